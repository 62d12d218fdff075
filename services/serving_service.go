package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Mark-Bosco/Clear-Meals/models"
)

// ErrMalformedServing marks reference data the scaler cannot work with:
// an unparsable serving description or a zero/missing base value. The
// food load fails rather than scaling against a guessed default.
var ErrMalformedServing = errors.New("malformed reference serving")

// ParseServingDescription splits a provider serving description into its
// leading numeric amount and trailing unit token. The amount may be an
// integer, a decimal, or a vulgar fraction ("1/2"); a trailing comma on
// the unit is stripped ("1 cup, chopped" → 1, "cup").
func ParseServingDescription(desc string) (float64, string, error) {
	fields := strings.Fields(desc)
	if len(fields) < 2 {
		return 0, "", fmt.Errorf("%w: description %q", ErrMalformedServing, desc)
	}

	amount, err := parseAmount(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("%w: amount %q", ErrMalformedServing, fields[0])
	}

	unit := strings.TrimSuffix(fields[1], ",")
	return amount, unit, nil
}

func parseAmount(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator in %q", s)
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

// clampInput normalizes user-entered numbers: anything negative or
// non-finite means the field was cleared and scales everything to zero.
func clampInput(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ScaleByAmount produces a DerivedServing whose nutrients are the
// reference values scaled to targetAmount (in the serving's own unit).
// Nutrients the provider never disclosed stay absent whatever the factor.
func ScaleByAmount(serving models.ReferenceServing, targetAmount float64) (models.DerivedServing, error) {
	baseAmount, unit, err := ParseServingDescription(serving.ServingDescription)
	if err != nil {
		return models.DerivedServing{}, err
	}
	if baseAmount <= 0 {
		return models.DerivedServing{}, fmt.Errorf("%w: non-positive base amount in %q", ErrMalformedServing, serving.ServingDescription)
	}

	factor := clampInput(targetAmount) / baseAmount
	return scaleServing(serving, baseAmount, unit, factor), nil
}

// ScaleByCalories is the calorie-driven counterpart of ScaleByAmount: the
// factor comes from the serving's base calories and the amount is
// back-derived, so the two operations are mutual inverses up to rounding.
func ScaleByCalories(serving models.ReferenceServing, targetCalories float64) (models.DerivedServing, error) {
	baseAmount, unit, err := ParseServingDescription(serving.ServingDescription)
	if err != nil {
		return models.DerivedServing{}, err
	}
	baseCalories := models.ParseNutrient(serving.Calories)
	if !baseCalories.OK || baseCalories.Value <= 0 {
		return models.DerivedServing{}, fmt.Errorf("%w: non-positive base calories %q", ErrMalformedServing, serving.Calories)
	}

	factor := clampInput(targetCalories) / baseCalories.Value
	return scaleServing(serving, baseAmount, unit, factor), nil
}

// scaleServing multiplies every disclosed field by factor. Amounts keep
// one decimal, calories round to whole kcal; remaining nutrients round
// when formatted at the persistence boundary.
func scaleServing(s models.ReferenceServing, baseAmount float64, unit string, factor float64) models.DerivedServing {
	metricUnit := s.MetricServingUnit
	if metricUnit == "" {
		metricUnit = models.NotApplicable
	}

	return models.DerivedServing{
		Amount:              roundTo(baseAmount*factor, 1),
		Unit:                unit,
		MetricServingAmount: models.ParseNutrient(s.MetricServingAmount).Scale(factor),
		MetricServingUnit:   metricUnit,

		Calories:     math.Round(models.ParseNutrient(s.Calories).OrZero() * factor),
		Fat:          models.ParseNutrient(s.Fat).Scale(factor),
		SaturatedFat: models.ParseNutrient(s.SaturatedFat).Scale(factor),
		TransFat:     models.ParseNutrient(s.TransFat).Scale(factor),
		Cholesterol:  models.ParseNutrient(s.Cholesterol).Scale(factor),
		Sodium:       models.ParseNutrient(s.Sodium).Scale(factor),
		Carbohydrate: models.ParseNutrient(s.Carbohydrate).Scale(factor),
		Fiber:        models.ParseNutrient(s.Fiber).Scale(factor),
		Sugar:        models.ParseNutrient(s.Sugar).Scale(factor),
		Protein:      models.ParseNutrient(s.Protein).Scale(factor),
		VitaminA:     models.ParseNutrient(s.VitaminA).Scale(factor),
		VitaminC:     models.ParseNutrient(s.VitaminC).Scale(factor),
		Calcium:      models.ParseNutrient(s.Calcium).Scale(factor),
		Iron:         models.ParseNutrient(s.Iron).Scale(factor),
	}
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// ServingSession drives one food's editing screen: which serving type is
// active, what scale the user has dialed in, and whether they have
// deviated from the natural 1x default (the sync flag). Input is
// serialized per screen instance, so the session is not safe for
// concurrent use and does not need to be.
type ServingSession struct {
	food   *models.ReferenceFood
	index  int
	synced bool
	curr   models.DerivedServing
}

// NewServingSession opens a food at its first serving's natural 1x scale.
func NewServingSession(food *models.ReferenceFood) (*ServingSession, error) {
	ss := &ServingSession{food: food}
	if len(food.Servings.Serving) == 0 {
		return nil, fmt.Errorf("%w: food %s has no servings", ErrMalformedServing, food.FoodID)
	}
	if err := ss.loadNatural(0); err != nil {
		return nil, err
	}
	return ss, nil
}

// ResumeServingSession reopens a previously saved entry. The saved
// calorie value is applied exactly once to reconstruct the equivalent
// scale, and the session starts synced so serving-type switches keep
// preserving calories.
func ResumeServingSession(food *models.ReferenceFood, savedCalories float64) (*ServingSession, error) {
	if len(food.Servings.Serving) == 0 {
		return nil, fmt.Errorf("%w: food %s has no servings", ErrMalformedServing, food.FoodID)
	}
	curr, err := ScaleByCalories(food.Servings.Serving[0], savedCalories)
	if err != nil {
		return nil, err
	}
	return &ServingSession{food: food, index: 0, synced: true, curr: curr}, nil
}

func (ss *ServingSession) loadNatural(index int) error {
	serving := ss.food.Servings.Serving[index]
	baseAmount, _, err := ParseServingDescription(serving.ServingDescription)
	if err != nil {
		return err
	}
	curr, err := ScaleByAmount(serving, baseAmount)
	if err != nil {
		return err
	}
	ss.index = index
	ss.curr = curr
	return nil
}

// Current returns the serving as displayed right now.
func (ss *ServingSession) Current() models.DerivedServing { return ss.curr }

// Index returns the active serving-type index.
func (ss *ServingSession) Index() int { return ss.index }

// Synced reports whether the user has deviated from the 1x default.
func (ss *ServingSession) Synced() bool { return ss.synced }

// SelectServing switches the active serving type. When the user has
// already dialed in a scale, the new serving is scaled to show the same
// calories that were on screen; otherwise it opens at its own 1x amount.
func (ss *ServingSession) SelectServing(index int) error {
	if index < 0 || index >= len(ss.food.Servings.Serving) {
		return fmt.Errorf("serving index %d out of range", index)
	}
	if ss.synced {
		curr, err := ScaleByCalories(ss.food.Servings.Serving[index], ss.curr.Calories)
		if err != nil {
			return err
		}
		ss.index = index
		ss.curr = curr
		return nil
	}
	return ss.loadNatural(index)
}

// SetAmount rescales to a user-entered quantity. Invalid entries clamp
// to zero rather than erroring at the user.
func (ss *ServingSession) SetAmount(target float64) error {
	curr, err := ScaleByAmount(ss.food.Servings.Serving[ss.index], target)
	if err != nil {
		return err
	}
	ss.synced = true
	ss.curr = curr
	return nil
}

// SetCalories rescales to a user-entered calorie count.
func (ss *ServingSession) SetCalories(target float64) error {
	curr, err := ScaleByCalories(ss.food.Servings.Serving[ss.index], target)
	if err != nil {
		return err
	}
	ss.synced = true
	ss.curr = curr
	return nil
}

// Reset returns the active serving to its natural 1x scale and clears
// the sync flag.
func (ss *ServingSession) Reset() error {
	if err := ss.loadNatural(ss.index); err != nil {
		return err
	}
	ss.synced = false
	return nil
}

// Flatten freezes the current serving into the persisted FoodListItem
// shape: every nutrient a whole-number string, absent values as "N/A".
func (ss *ServingSession) Flatten() models.FoodListItem {
	return FlattenServing(ss.food, ss.curr)
}

// FlattenServing converts a DerivedServing to the stored record for one
// food occurrence inside a meal.
func FlattenServing(food *models.ReferenceFood, s models.DerivedServing) models.FoodListItem {
	return models.FoodListItem{
		FoodID:    food.FoodID,
		FoodName:  food.FoodName,
		BrandName: food.Brand(),

		Calories:     strconv.FormatFloat(s.Calories, 'f', -1, 64),
		Fat:          s.Fat.String(),
		SaturatedFat: s.SaturatedFat.String(),
		TransFat:     s.TransFat.String(),
		Cholesterol:  s.Cholesterol.String(),
		Sodium:       s.Sodium.String(),
		Carbohydrate: s.Carbohydrate.String(),
		Fiber:        s.Fiber.String(),
		Sugar:        s.Sugar.String(),
		Protein:      s.Protein.String(),
		VitaminA:     s.VitaminA.String(),
		VitaminC:     s.VitaminC.String(),
		Calcium:      s.Calcium.String(),
		Iron:         s.Iron.String(),
	}
}
