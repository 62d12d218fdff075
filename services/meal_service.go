package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Mark-Bosco/Clear-Meals/config"
	"github.com/Mark-Bosco/Clear-Meals/models"
	"gorm.io/gorm"
)

// ErrMealNotFound distinguishes "updating a meal that was never saved"
// (a caller/state error) from an absent daily log, which is a normal
// empty case.
var ErrMealNotFound = errors.New("meal not found in daily log")

// MergeDuplicates collapses entries sharing a food_id into one entry
// whose nutrients are the numeric sums of the duplicates. Identity
// fields come from the first occurrence and first-appearance order is
// preserved. Applying it twice changes nothing.
func MergeDuplicates(items []models.FoodListItem) []models.FoodListItem {
	out := make([]models.FoodListItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		at, seen := index[item.FoodID]
		if !seen {
			index[item.FoodID] = len(out)
			out = append(out, freshItem(item))
			continue
		}
		out[at] = sumItems(out[at], item)
	}
	return out
}

// freshItem copies the stored fields of an item without its row
// identity, so merged output inserts as new rows.
func freshItem(item models.FoodListItem) models.FoodListItem {
	item.Model = gorm.Model{}
	item.MealID = 0
	return item
}

func sumItems(a, b models.FoodListItem) models.FoodListItem {
	a.Calories = models.ParseNutrient(a.Calories).Add(models.ParseNutrient(b.Calories)).String()
	a.Fat = models.ParseNutrient(a.Fat).Add(models.ParseNutrient(b.Fat)).String()
	a.SaturatedFat = models.ParseNutrient(a.SaturatedFat).Add(models.ParseNutrient(b.SaturatedFat)).String()
	a.TransFat = models.ParseNutrient(a.TransFat).Add(models.ParseNutrient(b.TransFat)).String()
	a.Cholesterol = models.ParseNutrient(a.Cholesterol).Add(models.ParseNutrient(b.Cholesterol)).String()
	a.Sodium = models.ParseNutrient(a.Sodium).Add(models.ParseNutrient(b.Sodium)).String()
	a.Carbohydrate = models.ParseNutrient(a.Carbohydrate).Add(models.ParseNutrient(b.Carbohydrate)).String()
	a.Fiber = models.ParseNutrient(a.Fiber).Add(models.ParseNutrient(b.Fiber)).String()
	a.Sugar = models.ParseNutrient(a.Sugar).Add(models.ParseNutrient(b.Sugar)).String()
	a.Protein = models.ParseNutrient(a.Protein).Add(models.ParseNutrient(b.Protein)).String()
	a.VitaminA = models.ParseNutrient(a.VitaminA).Add(models.ParseNutrient(b.VitaminA)).String()
	a.VitaminC = models.ParseNutrient(a.VitaminC).Add(models.ParseNutrient(b.VitaminC)).String()
	a.Calcium = models.ParseNutrient(a.Calcium).Add(models.ParseNutrient(b.Calcium)).String()
	a.Iron = models.ParseNutrient(a.Iron).Add(models.ParseNutrient(b.Iron)).String()
	return a
}

// ComputeMealTotals sums every nutrient across foods into a recomputed
// Meal. "N/A" counts as zero here — totals never go not-applicable. This
// is the only producer of meal_* values; nothing adjusts them
// incrementally.
func ComputeMealTotals(mealType models.MealType, foods []models.FoodListItem) models.Meal {
	meal := models.Meal{Type: mealType, Foods: foods}
	for _, f := range foods {
		meal.MealCalories += models.ParseNutrient(f.Calories).OrZero()
		meal.MealFat += models.ParseNutrient(f.Fat).OrZero()
		meal.MealSaturatedFat += models.ParseNutrient(f.SaturatedFat).OrZero()
		meal.MealTransFat += models.ParseNutrient(f.TransFat).OrZero()
		meal.MealCholesterol += models.ParseNutrient(f.Cholesterol).OrZero()
		meal.MealSodium += models.ParseNutrient(f.Sodium).OrZero()
		meal.MealCarbs += models.ParseNutrient(f.Carbohydrate).OrZero()
		meal.MealFiber += models.ParseNutrient(f.Fiber).OrZero()
		meal.MealSugar += models.ParseNutrient(f.Sugar).OrZero()
		meal.MealProtein += models.ParseNutrient(f.Protein).OrZero()
		meal.MealVitaminA += models.ParseNutrient(f.VitaminA).OrZero()
		meal.MealVitaminC += models.ParseNutrient(f.VitaminC).OrZero()
		meal.MealCalcium += models.ParseNutrient(f.Calcium).OrZero()
		meal.MealIron += models.ParseNutrient(f.Iron).OrZero()
	}
	return meal
}

// DayTotals is the day-level roll-up. It is always derived on read by
// summing the present meals' totals; no table stores it.
type DayTotals struct {
	Calories     float64 `json:"total_calories"`
	Fat          float64 `json:"total_fat"`
	SaturatedFat float64 `json:"total_saturated_fat"`
	TransFat     float64 `json:"total_trans_fat"`
	Cholesterol  float64 `json:"total_cholesterol"`
	Sodium       float64 `json:"total_sodium"`
	Carbs        float64 `json:"total_carbs"`
	Fiber        float64 `json:"total_fiber"`
	Sugar        float64 `json:"total_sugar"`
	Protein      float64 `json:"total_protein"`
	VitaminA     float64 `json:"total_vitamin_a"`
	VitaminC     float64 `json:"total_vitamin_c"`
	Calcium      float64 `json:"total_calcium"`
	Iron         float64 `json:"total_iron"`
}

func ComputeDayTotals(log *models.DailyLog) DayTotals {
	var t DayTotals
	for _, m := range log.Meals {
		t.Calories += m.MealCalories
		t.Fat += m.MealFat
		t.SaturatedFat += m.MealSaturatedFat
		t.TransFat += m.MealTransFat
		t.Cholesterol += m.MealCholesterol
		t.Sodium += m.MealSodium
		t.Carbs += m.MealCarbs
		t.Fiber += m.MealFiber
		t.Sugar += m.MealSugar
		t.Protein += m.MealProtein
		t.VitaminA += m.MealVitaminA
		t.VitaminC += m.MealVitaminC
		t.Calcium += m.MealCalcium
		t.Iron += m.MealIron
	}
	return t
}

// MealService owns the persisted daily logs. Every write recomputes the
// affected meal wholesale inside one transaction: load, rebuild the food
// list, replace, never touch a total in place.
type MealService struct{}

func NewMealService() *MealService {
	return &MealService{}
}

// GetDailyLog loads one user-day. An absent log is a valid, empty
// outcome — never an error.
func (s *MealService) GetDailyLog(userID uint, date string) (*models.DailyLog, error) {
	var log models.DailyLog
	err := config.DB.
		Preload("Meals.Foods", func(db *gorm.DB) *gorm.DB { return db.Order("food_list_items.id") }).
		Preload("Meals").
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyLog{UserID: userID, Date: date, Meals: []models.Meal{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// SaveMeal commits a session's draft foods into the given meal slot:
// existing foods concatenate with the new ones, duplicates merge, totals
// recompute from scratch, and the stored meal is replaced wholesale.
func (s *MealService) SaveMeal(userID uint, date string, mealType models.MealType, newFoods []models.FoodListItem) (*models.DailyLog, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("invalid meal type %q", mealType)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var log models.DailyLog
		if err := tx.Where("user_id = ? AND date = ?", userID, date).
			FirstOrCreate(&log, models.DailyLog{UserID: userID, Date: date}).Error; err != nil {
			return err
		}

		meal, foods, err := loadMeal(tx, log.ID, mealType)
		if err != nil && !errors.Is(err, ErrMealNotFound) {
			return err
		}
		if errors.Is(err, ErrMealNotFound) {
			meal = &models.Meal{DailyLogID: log.ID, Type: mealType}
			if err := tx.Create(meal).Error; err != nil {
				return err
			}
			foods = nil
		}

		merged := MergeDuplicates(append(foods, newFoods...))
		return replaceMealContents(tx, meal, merged)
	})
	if err != nil {
		return nil, err
	}
	return s.GetDailyLog(userID, date)
}

// SaveFoodAt replaces the food at position index inside an existing
// meal, appending when index is -1 or out of range. The meal must
// already exist; editing a never-saved meal is a state error.
func (s *MealService) SaveFoodAt(userID uint, date string, mealType models.MealType, item models.FoodListItem, index int) (*models.DailyLog, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("invalid meal type %q", mealType)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		log, err := findLog(tx, userID, date)
		if err != nil {
			return err
		}
		meal, foods, err := loadMeal(tx, log.ID, mealType)
		if err != nil {
			return err
		}

		item = freshItem(item)
		if index >= 0 && index < len(foods) {
			foods[index] = item
		} else {
			foods = append(foods, item)
		}
		return replaceMealContents(tx, meal, foods)
	})
	if err != nil {
		return nil, err
	}
	return s.GetDailyLog(userID, date)
}

// DeleteFood removes every entry with the given food id from the meal
// and recomputes totals. An id that is not present is a no-op, not an
// error; a meal that does not exist is.
func (s *MealService) DeleteFood(userID uint, date string, mealType models.MealType, foodID string) (*models.DailyLog, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("invalid meal type %q", mealType)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		log, err := findLog(tx, userID, date)
		if err != nil {
			return err
		}
		meal, foods, err := loadMeal(tx, log.ID, mealType)
		if err != nil {
			return err
		}

		kept := make([]models.FoodListItem, 0, len(foods))
		for _, f := range foods {
			if f.FoodID != foodID {
				kept = append(kept, f)
			}
		}
		return replaceMealContents(tx, meal, kept)
	})
	if err != nil {
		return nil, err
	}
	return s.GetDailyLog(userID, date)
}

// ListLogDates returns the dates in [from, to] that have a saved log,
// for the history calendar.
func (s *MealService) ListLogDates(userID uint, from, to string) ([]string, error) {
	var dates []string
	err := config.DB.Model(&models.DailyLog{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").
		Pluck("date", &dates).Error
	return dates, err
}

func findLog(tx *gorm.DB, userID uint, date string) (*models.DailyLog, error) {
	var log models.DailyLog
	err := tx.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func loadMeal(tx *gorm.DB, logID uint, mealType models.MealType) (*models.Meal, []models.FoodListItem, error) {
	var meal models.Meal
	err := tx.Where("daily_log_id = ? AND type = ?", logID, mealType).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrMealNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var foods []models.FoodListItem
	if err := tx.Where("meal_id = ?", meal.ID).Order("id").Find(&foods).Error; err != nil {
		return nil, nil, err
	}
	return &meal, foods, nil
}

// replaceMealContents swaps a meal's food rows for the given list and
// writes totals recomputed from it.
func replaceMealContents(tx *gorm.DB, meal *models.Meal, foods []models.FoodListItem) error {
	if err := tx.Unscoped().Where("meal_id = ?", meal.ID).Delete(&models.FoodListItem{}).Error; err != nil {
		return err
	}

	totals := ComputeMealTotals(meal.Type, foods)
	meal.MealCalories = totals.MealCalories
	meal.MealFat = totals.MealFat
	meal.MealSaturatedFat = totals.MealSaturatedFat
	meal.MealTransFat = totals.MealTransFat
	meal.MealCholesterol = totals.MealCholesterol
	meal.MealSodium = totals.MealSodium
	meal.MealCarbs = totals.MealCarbs
	meal.MealFiber = totals.MealFiber
	meal.MealSugar = totals.MealSugar
	meal.MealProtein = totals.MealProtein
	meal.MealVitaminA = totals.MealVitaminA
	meal.MealVitaminC = totals.MealVitaminC
	meal.MealCalcium = totals.MealCalcium
	meal.MealIron = totals.MealIron
	if err := tx.Save(meal).Error; err != nil {
		return err
	}

	for i := range foods {
		foods[i] = freshItem(foods[i])
		foods[i].MealID = meal.ID
	}
	if len(foods) == 0 {
		return nil
	}
	return tx.Create(&foods).Error
}

// ParseCalories reads a stored calorie string for the edit-reopen flow.
func ParseCalories(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stored calories %q: %w", s, err)
	}
	return v, nil
}
