package models

import (
	"gorm.io/gorm"
)

// MealType is one of the four fixed meal slots.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
)

func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// DailyLog is one user's diary for one calendar day. A Meal row exists
// only once foods have been saved under its slot. Day-level totals are
// never stored; they are derived on read from the meal totals.
type DailyLog struct {
	gorm.Model `json:"-"`
	UserID     uint   `gorm:"index:idx_user_date,unique;not null" json:"-"`
	Date       string `gorm:"index:idx_user_date,unique;type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Meals      []Meal `json:"meals"`
}

// Meal is one slot's food list plus its nutrient totals. The meal_*
// columns are a pure function of Foods — every write path recomputes them
// wholesale, nothing increments them in place.
type Meal struct {
	gorm.Model `json:"-"`
	DailyLogID uint           `gorm:"index" json:"-"`
	Type       MealType       `gorm:"type:varchar(16);not null" json:"type"`
	Foods      []FoodListItem `json:"foods"`

	MealCalories     float64 `json:"meal_calories"`
	MealFat          float64 `json:"meal_fat"`
	MealSaturatedFat float64 `json:"meal_saturated_fat"`
	MealTransFat     float64 `json:"meal_trans_fat"`
	MealCholesterol  float64 `json:"meal_cholesterol"`
	MealSodium       float64 `json:"meal_sodium"`
	MealCarbs        float64 `json:"meal_carbs"`
	MealFiber        float64 `json:"meal_fiber"`
	MealSugar        float64 `json:"meal_sugar"`
	MealProtein      float64 `json:"meal_protein"`
	MealVitaminA     float64 `json:"meal_vitamin_a"`
	MealVitaminC     float64 `json:"meal_vitamin_c"`
	MealCalcium      float64 `json:"meal_calcium"`
	MealIron         float64 `json:"meal_iron"`
}

// FoodListItem is the persisted, flattened record of one food occurrence
// inside a meal. Nutrients are stored as strings with the literal "N/A"
// for values the provider never disclosed — the stored shape the mobile
// clients have always read, preserved exactly.
type FoodListItem struct {
	gorm.Model `json:"-"`
	MealID     uint `gorm:"index" json:"-"`

	FoodID    string `gorm:"type:varchar(64);not null" json:"food_id"`
	FoodName  string `json:"food_name"`
	BrandName string `json:"brand_name"`

	Calories     string `json:"calories"`
	Fat          string `json:"fat"`
	SaturatedFat string `json:"saturated_fat"`
	TransFat     string `json:"trans_fat"`
	Cholesterol  string `json:"cholesterol"`
	Sodium       string `json:"sodium"`
	Carbohydrate string `json:"carbohydrate"`
	Fiber        string `json:"fiber"`
	Sugar        string `json:"sugar"`
	Protein      string `json:"protein"`
	VitaminA     string `json:"vitamin_a"`
	VitaminC     string `json:"vitamin_c"`
	Calcium      string `json:"calcium"`
	Iron         string `json:"iron"`
}

// MealOfType returns the meal saved under the given slot, or nil.
func (l *DailyLog) MealOfType(t MealType) *Meal {
	for i := range l.Meals {
		if l.Meals[i].Type == t {
			return &l.Meals[i]
		}
	}
	return nil
}
