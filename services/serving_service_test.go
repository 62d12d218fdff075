package services

import (
	"errors"
	"math"
	"testing"

	"github.com/Mark-Bosco/Clear-Meals/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bananaServing() models.ReferenceServing {
	return models.ReferenceServing{
		ServingDescription: "1 medium (118g)",
		Calories:           "105",
		Carbohydrate:       "27",
		Protein:            "1.3",
		Sugar:              "14",
	}
}

func bananaFood() *models.ReferenceFood {
	return &models.ReferenceFood{
		FoodID:   "35755",
		FoodName: "Banana",
		Servings: models.Servings{Serving: []models.ReferenceServing{bananaServing()}},
	}
}

func TestParseServingDescription(t *testing.T) {
	tests := []struct {
		name    string
		desc    string
		amount  float64
		unit    string
		wantErr bool
	}{
		{name: "integer amount", desc: "1 cup", amount: 1, unit: "cup"},
		{name: "decimal amount", desc: "2.5 oz", amount: 2.5, unit: "oz"},
		{name: "vulgar fraction", desc: "1/2 cup", amount: 0.5, unit: "cup"},
		{name: "trailing comma stripped", desc: "1 cup, chopped", amount: 1, unit: "cup"},
		{name: "extra detail ignored", desc: "1 medium (118g)", amount: 1, unit: "medium"},
		{name: "grams", desc: "100 g", amount: 100, unit: "g"},
		{name: "no unit", desc: "100", wantErr: true},
		{name: "empty", desc: "", wantErr: true},
		{name: "non-numeric amount", desc: "one cup", wantErr: true},
		{name: "zero denominator", desc: "1/0 cup", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, unit, err := ParseServingDescription(tt.desc)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedServing)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.amount, amount, 0.0001)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestScaleByAmount(t *testing.T) {
	serving := bananaServing()

	t.Run("doubling", func(t *testing.T) {
		d, err := ScaleByAmount(serving, 2)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, d.Amount, 0.01)
		assert.Equal(t, "medium", d.Unit)
		assert.InDelta(t, 210, d.Calories, 0.01)
		assert.InDelta(t, 54, d.Carbohydrate.Value, 0.01)
	})

	t.Run("negative input clamps to zero", func(t *testing.T) {
		d, err := ScaleByAmount(serving, -3)
		require.NoError(t, err)
		assert.Zero(t, d.Amount)
		assert.Zero(t, d.Calories)
		assert.Zero(t, d.Carbohydrate.Value)
	})

	t.Run("NaN input clamps to zero", func(t *testing.T) {
		d, err := ScaleByAmount(serving, math.NaN())
		require.NoError(t, err)
		assert.Zero(t, d.Amount)
		assert.Zero(t, d.Calories)
	})

	t.Run("absent nutrient stays not applicable", func(t *testing.T) {
		d, err := ScaleByAmount(serving, 5)
		require.NoError(t, err)
		assert.False(t, d.VitaminA.OK)
		assert.Equal(t, models.NotApplicable, d.VitaminA.String())
		assert.True(t, d.Sugar.OK)
	})

	t.Run("zero base amount is malformed", func(t *testing.T) {
		bad := serving
		bad.ServingDescription = "0 cup"
		_, err := ScaleByAmount(bad, 1)
		assert.ErrorIs(t, err, ErrMalformedServing)
	})
}

func TestScaleByCalories(t *testing.T) {
	serving := bananaServing()

	t.Run("banana at 210 calories", func(t *testing.T) {
		d, err := ScaleByCalories(serving, 210)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, d.Amount, 0.1)
		assert.InDelta(t, 210, d.Calories, 0.01)
		assert.InDelta(t, 54, d.Carbohydrate.Value, 0.1)
	})

	t.Run("zero base calories is malformed", func(t *testing.T) {
		bad := serving
		bad.Calories = "0"
		_, err := ScaleByCalories(bad, 100)
		assert.ErrorIs(t, err, ErrMalformedServing)
	})

	t.Run("missing base calories is malformed", func(t *testing.T) {
		bad := serving
		bad.Calories = ""
		_, err := ScaleByCalories(bad, 100)
		assert.ErrorIs(t, err, ErrMalformedServing)
	})
}

// Scaling by amount and then by the resulting calories must land back on
// the original amount, within rounding tolerance.
func TestScaleInverseLaw(t *testing.T) {
	serving := bananaServing()
	for _, x := range []float64{0.5, 1, 1.3, 2, 3.7, 7} {
		byAmount, err := ScaleByAmount(serving, x)
		require.NoError(t, err)
		byCalories, err := ScaleByCalories(serving, byAmount.Calories)
		require.NoError(t, err)
		assert.InDeltaf(t, x, byCalories.Amount, 0.1, "round trip through %v calories", byAmount.Calories)
	}
}

func TestServingSessionSwitchAndSync(t *testing.T) {
	food := &models.ReferenceFood{
		FoodID:   "1",
		FoodName: "Oats",
		Servings: models.Servings{Serving: []models.ReferenceServing{
			{ServingDescription: "1 cup", Calories: "300", Protein: "10"},
			{ServingDescription: "100 g", Calories: "375", Protein: "12.5"},
		}},
	}

	t.Run("unsynced switch loads natural scale", func(t *testing.T) {
		ss, err := NewServingSession(food)
		require.NoError(t, err)
		require.NoError(t, ss.SelectServing(1))
		assert.InDelta(t, 100, ss.Current().Amount, 0.01)
		assert.InDelta(t, 375, ss.Current().Calories, 0.01)
		assert.False(t, ss.Synced())
	})

	t.Run("synced switch preserves calories", func(t *testing.T) {
		ss, err := NewServingSession(food)
		require.NoError(t, err)
		require.NoError(t, ss.SetCalories(600))
		assert.True(t, ss.Synced())
		assert.InDelta(t, 2.0, ss.Current().Amount, 0.01)

		require.NoError(t, ss.SelectServing(1))
		assert.InDelta(t, 600, ss.Current().Calories, 0.01)
		assert.InDelta(t, 160, ss.Current().Amount, 0.1) // 600/375 * 100g
	})

	t.Run("reset returns to natural scale and clears sync", func(t *testing.T) {
		ss, err := NewServingSession(food)
		require.NoError(t, err)
		require.NoError(t, ss.SetAmount(4))
		require.NoError(t, ss.Reset())
		assert.False(t, ss.Synced())
		assert.InDelta(t, 1.0, ss.Current().Amount, 0.01)
		assert.InDelta(t, 300, ss.Current().Calories, 0.01)
	})

	t.Run("amount edit marks session synced", func(t *testing.T) {
		ss, err := NewServingSession(food)
		require.NoError(t, err)
		require.NoError(t, ss.SetAmount(2))
		assert.True(t, ss.Synced())
		assert.InDelta(t, 600, ss.Current().Calories, 0.01)
	})

	t.Run("out of range serving index", func(t *testing.T) {
		ss, err := NewServingSession(food)
		require.NoError(t, err)
		assert.Error(t, ss.SelectServing(5))
		assert.Error(t, ss.SelectServing(-1))
	})
}

func TestResumeServingSession(t *testing.T) {
	food := bananaFood()

	ss, err := ResumeServingSession(food, 210)
	require.NoError(t, err)

	// The saved calorie value reconstructs the scale and the session
	// starts synced, so a serving switch keeps the calories.
	assert.True(t, ss.Synced())
	assert.InDelta(t, 210, ss.Current().Calories, 0.01)
	assert.InDelta(t, 2.0, ss.Current().Amount, 0.1)
}

func TestFlattenServing(t *testing.T) {
	ss, err := NewServingSession(bananaFood())
	require.NoError(t, err)
	require.NoError(t, ss.SetCalories(210))

	item := ss.Flatten()
	assert.Equal(t, "35755", item.FoodID)
	assert.Equal(t, "Banana", item.FoodName)
	assert.Equal(t, "Generic", item.BrandName)
	assert.Equal(t, "210", item.Calories)
	assert.Equal(t, "54", item.Carbohydrate)
	assert.Equal(t, models.NotApplicable, item.VitaminA)
	assert.Equal(t, models.NotApplicable, item.Fat)
}

func TestAddMetricServings(t *testing.T) {
	t.Run("synthesizes gram and oz servings", func(t *testing.T) {
		food := &models.ReferenceFood{
			FoodID: "2",
			Servings: models.Servings{Serving: []models.ReferenceServing{
				{
					ServingDescription:  "1 cup",
					MetricServingAmount: "240",
					MetricServingUnit:   "g",
					Calories:            "150",
					Protein:             "8",
				},
			}},
		}

		require.NoError(t, AddMetricServings(food))
		require.Len(t, food.Servings.Serving, 3)

		oz := food.Servings.Serving[1]
		assert.Equal(t, "oz", oz.MetricServingUnit)
		ozAmount, _, err := ParseServingDescription(oz.ServingDescription)
		require.NoError(t, err)
		assert.InDelta(t, 240/28.34952, ozAmount, 0.1)

		g := food.Servings.Serving[2]
		assert.Equal(t, "g", g.MetricServingUnit)
		gAmount, _, err := ParseServingDescription(g.ServingDescription)
		require.NoError(t, err)
		assert.InDelta(t, 240, gAmount, 0.1)

		// Nutrients are cloned unscaled; scaling happens when the
		// synthesized serving is selected.
		assert.Equal(t, "150", g.Calories)
		assert.Equal(t, "8", g.Protein)
	})

	t.Run("missing metric amount leaves food unchanged", func(t *testing.T) {
		food := &models.ReferenceFood{
			FoodID: "3",
			Servings: models.Servings{Serving: []models.ReferenceServing{
				{ServingDescription: "1 slice", Calories: "80"},
			}},
		}
		require.NoError(t, AddMetricServings(food))
		assert.Len(t, food.Servings.Serving, 1)
	})

	t.Run("missing metric unit is a hard error", func(t *testing.T) {
		food := &models.ReferenceFood{
			FoodID: "4",
			Servings: models.Servings{Serving: []models.ReferenceServing{
				{ServingDescription: "1 cup", MetricServingAmount: "240", Calories: "150"},
			}},
		}
		err := AddMetricServings(food)
		assert.True(t, errors.Is(err, ErrMissingMetricUnit))
	})

	t.Run("existing gram serving is not duplicated", func(t *testing.T) {
		food := &models.ReferenceFood{
			FoodID: "5",
			Servings: models.Servings{Serving: []models.ReferenceServing{
				{ServingDescription: "1 cup", MetricServingAmount: "240", MetricServingUnit: "g", Calories: "150"},
				{ServingDescription: "100 g", Calories: "62.5"},
			}},
		}
		require.NoError(t, AddMetricServings(food))
		require.Len(t, food.Servings.Serving, 3)
		assert.Equal(t, "oz", food.Servings.Serving[2].MetricServingUnit)
	})

	t.Run("oz metric unit converts to grams", func(t *testing.T) {
		food := &models.ReferenceFood{
			FoodID: "6",
			Servings: models.Servings{Serving: []models.ReferenceServing{
				{ServingDescription: "1 bar", MetricServingAmount: "1.5", MetricServingUnit: "oz", Calories: "210"},
			}},
		}
		require.NoError(t, AddMetricServings(food))
		require.Len(t, food.Servings.Serving, 3)

		g := food.Servings.Serving[2]
		gAmount, _, err := ParseServingDescription(g.ServingDescription)
		require.NoError(t, err)
		assert.InDelta(t, 1.5*28.34952, gAmount, 0.5) // description keeps whole grams
	})
}
