package models

// Shapes returned by the FatSecret food.get endpoint. All numeric fields
// arrive as strings and optional nutrients are simply omitted, so these
// stay string-typed; ParseNutrient is the only way values leave this form.

type ReferenceFood struct {
	FoodID    string   `json:"food_id"`
	FoodName  string   `json:"food_name"`
	BrandName string   `json:"brand_name,omitempty"`
	Servings  Servings `json:"servings"`
}

// The API nests the serving list one level down.
type Servings struct {
	Serving []ReferenceServing `json:"serving"`
}

// ReferenceServing is one disclosed serving size: a free-text description
// ("1 cup", "100 g"), an optional metric equivalent, and nutrient values
// for that serving. The description embeds amount and unit; it is parsed
// fresh on every scaling call, never cached.
type ReferenceServing struct {
	ServingDescription  string `json:"serving_description"`
	MetricServingAmount string `json:"metric_serving_amount,omitempty"`
	MetricServingUnit   string `json:"metric_serving_unit,omitempty"`

	Calories     string `json:"calories"`
	Fat          string `json:"fat,omitempty"`
	SaturatedFat string `json:"saturated_fat,omitempty"`
	TransFat     string `json:"trans_fat,omitempty"`
	Cholesterol  string `json:"cholesterol,omitempty"`
	Sodium       string `json:"sodium,omitempty"`
	Carbohydrate string `json:"carbohydrate,omitempty"`
	Fiber        string `json:"fiber,omitempty"`
	Sugar        string `json:"sugar,omitempty"`
	Protein      string `json:"protein,omitempty"`
	VitaminA     string `json:"vitamin_a,omitempty"`
	VitaminC     string `json:"vitamin_c,omitempty"`
	Calcium      string `json:"calcium,omitempty"`
	Iron         string `json:"iron,omitempty"`
}

// Brand returns the display brand, defaulting generic foods the way the
// app always has.
func (f *ReferenceFood) Brand() string {
	if f.BrandName == "" {
		return "Generic"
	}
	return f.BrandName
}

// DerivedServing is the scaled-to-user-intent view of a ReferenceServing.
// Amount and unit are split out of the description and every nutrient is
// the reference value times the scale factor. It lives only while a food
// is being edited; saving flattens it into a FoodListItem.
type DerivedServing struct {
	Amount              float64
	Unit                string
	MetricServingAmount Nutrient
	MetricServingUnit   string

	Calories     float64
	Fat          Nutrient
	SaturatedFat Nutrient
	TransFat     Nutrient
	Cholesterol  Nutrient
	Sodium       Nutrient
	Carbohydrate Nutrient
	Fiber        Nutrient
	Sugar        Nutrient
	Protein      Nutrient
	VitaminA     Nutrient
	VitaminC     Nutrient
	Calcium      Nutrient
	Iron         Nutrient
}
