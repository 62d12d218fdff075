package services

import (
	"testing"

	"github.com/Mark-Bosco/Clear-Meals/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func item(foodID, name, calories, protein string) models.FoodListItem {
	return models.FoodListItem{
		FoodID:   foodID,
		FoodName: name,
		Calories: calories,
		Protein:  protein,
	}
}

func TestMergeDuplicates(t *testing.T) {
	t.Run("same food merges into one entry", func(t *testing.T) {
		merged := MergeDuplicates([]models.FoodListItem{
			item("A", "Apple", "100", "1"),
			item("A", "Apple", "50", "0.5"),
		})

		require.Len(t, merged, 1)
		assert.Equal(t, "150", merged[0].Calories)
		assert.Equal(t, "2", merged[0].Protein) // 1 + 0.5, rounded whole
	})

	t.Run("identity comes from first occurrence", func(t *testing.T) {
		a := item("A", "Apple", "100", "1")
		a.BrandName = "Orchard Co"
		later := item("A", "Apple (renamed)", "50", "1")
		later.BrandName = "Other"

		merged := MergeDuplicates([]models.FoodListItem{a, later})
		require.Len(t, merged, 1)
		assert.Equal(t, "Apple", merged[0].FoodName)
		assert.Equal(t, "Orchard Co", merged[0].BrandName)
	})

	t.Run("first-appearance order is preserved", func(t *testing.T) {
		merged := MergeDuplicates([]models.FoodListItem{
			item("B", "Bread", "80", "3"),
			item("A", "Apple", "100", "1"),
			item("B", "Bread", "80", "3"),
			item("C", "Cheese", "110", "7"),
		})

		require.Len(t, merged, 3)
		assert.Equal(t, "B", merged[0].FoodID)
		assert.Equal(t, "A", merged[1].FoodID)
		assert.Equal(t, "C", merged[2].FoodID)
		assert.Equal(t, "160", merged[0].Calories)
	})

	t.Run("merging twice changes nothing", func(t *testing.T) {
		once := MergeDuplicates([]models.FoodListItem{
			item("A", "Apple", "100", "1"),
			item("A", "Apple", "50", "0.5"),
			item("B", "Bread", "80", "3"),
		})
		twice := MergeDuplicates(once)
		assert.Equal(t, once, twice)
	})

	t.Run("absent nutrients survive merging", func(t *testing.T) {
		a := item("A", "Apple", "100", "1")
		a.VitaminA = models.NotApplicable
		a.Sugar = models.NotApplicable
		b := item("A", "Apple", "50", "1")
		b.VitaminA = models.NotApplicable
		b.Sugar = "10"

		merged := MergeDuplicates([]models.FoodListItem{a, b})
		require.Len(t, merged, 1)
		// both absent stays absent, one side present becomes numeric
		assert.Equal(t, models.NotApplicable, merged[0].VitaminA)
		assert.Equal(t, "10", merged[0].Sugar)
	})

	t.Run("row identity is stripped for reinsertion", func(t *testing.T) {
		a := item("A", "Apple", "100", "1")
		a.Model = gorm.Model{ID: 42}
		a.MealID = 7

		merged := MergeDuplicates([]models.FoodListItem{a})
		require.Len(t, merged, 1)
		assert.Zero(t, merged[0].ID)
		assert.Zero(t, merged[0].MealID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MergeDuplicates(nil))
	})
}

func TestComputeMealTotals(t *testing.T) {
	t.Run("sums every food", func(t *testing.T) {
		meal := ComputeMealTotals(models.Lunch, []models.FoodListItem{
			item("A", "Apple", "100", "1"),
			item("B", "Bread", "80", "3"),
		})

		assert.Equal(t, models.Lunch, meal.Type)
		assert.InDelta(t, 180, meal.MealCalories, 0.001)
		assert.InDelta(t, 4, meal.MealProtein, 0.001)
	})

	t.Run("not applicable counts as zero", func(t *testing.T) {
		a := item("A", "Apple", "100", models.NotApplicable)
		b := item("B", "Bread", "80", "3")

		meal := ComputeMealTotals(models.Snack, []models.FoodListItem{a, b})
		assert.InDelta(t, 3, meal.MealProtein, 0.001)
	})

	t.Run("input list is not mutated", func(t *testing.T) {
		foods := []models.FoodListItem{item("A", "Apple", "100", "1")}
		before := foods[0]
		_ = ComputeMealTotals(models.Breakfast, foods)
		assert.Equal(t, before, foods[0])
	})

	t.Run("totals are additive over a split", func(t *testing.T) {
		foods := []models.FoodListItem{
			item("A", "Apple", "100", "1"),
			item("B", "Bread", "80", "3"),
			item("C", "Cheese", "110", "7"),
		}

		whole := ComputeMealTotals(models.Dinner, foods)
		left := ComputeMealTotals(models.Dinner, foods[:1])
		right := ComputeMealTotals(models.Dinner, foods[1:])

		assert.InDelta(t, whole.MealCalories, left.MealCalories+right.MealCalories, 0.001)
		assert.InDelta(t, whole.MealProtein, left.MealProtein+right.MealProtein, 0.001)
	})

	t.Run("empty meal totals to zero", func(t *testing.T) {
		meal := ComputeMealTotals(models.Breakfast, nil)
		assert.Zero(t, meal.MealCalories)
		assert.Zero(t, meal.MealProtein)
		assert.Empty(t, meal.Foods)
	})
}

// Committing a draft with the same food twice produces one merged entry,
// and the meal total equals the merged sum.
func TestMergeThenTotals(t *testing.T) {
	draft := NewDraftList()
	draft.Add(item("A", "Apple", "100", "1"))
	draft.Add(item("A", "Apple", "50", "1"))

	merged := MergeDuplicates(draft.Items())
	require.Len(t, merged, 1)
	assert.Equal(t, "150", merged[0].Calories)

	meal := ComputeMealTotals(models.Lunch, merged)
	assert.InDelta(t, 150, meal.MealCalories, 0.001)
}

func TestComputeDayTotals(t *testing.T) {
	log := &models.DailyLog{
		Date: "2025-01-15",
		Meals: []models.Meal{
			{Type: models.Breakfast, MealCalories: 300, MealProtein: 20},
			{Type: models.Lunch, MealCalories: 650, MealProtein: 35},
		},
	}

	totals := ComputeDayTotals(log)
	assert.InDelta(t, 950, totals.Calories, 0.001)
	assert.InDelta(t, 55, totals.Protein, 0.001)

	t.Run("empty log", func(t *testing.T) {
		totals := ComputeDayTotals(&models.DailyLog{Date: "2025-01-16"})
		assert.Zero(t, totals.Calories)
	})
}

func TestParseCalories(t *testing.T) {
	v, err := ParseCalories("210")
	require.NoError(t, err)
	assert.InDelta(t, 210, v, 0.001)

	_, err = ParseCalories(models.NotApplicable)
	assert.Error(t, err)
}
