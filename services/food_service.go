package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mark-Bosco/Clear-Meals/models"
)

// 1 oz = 28.34952 g, the conversion the whole app standardizes on.
const gramsPerOunce = 28.34952

func ozToGrams(oz float64) float64 { return oz * gramsPerOunce }
func gramsToOz(g float64) float64  { return g / gramsPerOunce }

// ErrMissingMetricUnit is returned when a food discloses a metric amount
// but no metric unit. Synthesis cannot silently skip it: the oz/gram
// toggle downstream assumes both units exist whenever synthesis ran.
var ErrMissingMetricUnit = errors.New("missing metric serving unit for food item")

// FoodService fronts the nutrition provider: search, autocomplete, and
// food fetch with metric-serving synthesis applied before anything
// scales.
type FoodService struct {
	fs *FatSecretService
}

func NewFoodService(fs *FatSecretService) *FoodService {
	return &FoodService{fs: fs}
}

func (s *FoodService) Search(query string, page int) (*FoodSearchPage, error) {
	return s.fs.SearchFoods(query, page)
}

func (s *FoodService) Autocomplete(expression string) ([]string, error) {
	return s.fs.Autocomplete(expression)
}

// GetFood fetches a food and appends synthesized oz/gram servings when
// the provider left them out. The returned food is ready for a
// ServingSession.
func (s *FoodService) GetFood(foodID string) (*models.ReferenceFood, error) {
	food, err := s.fs.GetFood(foodID)
	if err != nil {
		return nil, err
	}
	if err := AddMetricServings(food); err != nil {
		return nil, err
	}
	return food, nil
}

// AddMetricServings derives oz and gram servings from the first
// serving's metric equivalent when the serving list lacks them. The
// clone keeps the first serving's nutrient values untouched — they are
// per the original serving amount, and scaling against the new
// descriptive amount happens later, when the serving is selected.
// Runs once per fetched food, before any scaling.
func AddMetricServings(food *models.ReferenceFood) error {
	servings := food.Servings.Serving
	if len(servings) == 0 {
		return fmt.Errorf("%w: food %s has no servings", ErrMalformedServing, food.FoodID)
	}

	first := servings[0]
	if first.MetricServingAmount == "" {
		// Nothing to derive from; leave the food as-is.
		return nil
	}
	metricAmount, err := strconv.ParseFloat(first.MetricServingAmount, 64)
	if err != nil {
		return fmt.Errorf("%w: metric amount %q", ErrMalformedServing, first.MetricServingAmount)
	}
	if first.MetricServingUnit == "" {
		return ErrMissingMetricUnit
	}

	hasOz := hasUnit(servings, "oz")
	hasGram := hasUnit(servings, "g")

	metricUnit := strings.ToLower(first.MetricServingUnit)
	if metricUnit != "oz" && metricUnit != "g" {
		return nil
	}

	if !hasOz {
		ozAmount := metricAmount
		if metricUnit == "g" {
			ozAmount = gramsToOz(metricAmount)
		}
		oz := first
		oz.ServingDescription = fmt.Sprintf("%.1f oz", ozAmount)
		oz.MetricServingAmount = strconv.FormatFloat(ozAmount, 'f', -1, 64)
		oz.MetricServingUnit = "oz"
		servings = append(servings, oz)
	}
	if !hasGram {
		gAmount := metricAmount
		if metricUnit == "oz" {
			gAmount = ozToGrams(metricAmount)
		}
		g := first
		g.ServingDescription = fmt.Sprintf("%.0f g", gAmount)
		g.MetricServingAmount = strconv.FormatFloat(gAmount, 'f', -1, 64)
		g.MetricServingUnit = "g"
		servings = append(servings, g)
	}

	food.Servings.Serving = servings
	return nil
}

func hasUnit(servings []models.ReferenceServing, unit string) bool {
	for _, s := range servings {
		fields := strings.Fields(s.ServingDescription)
		if len(fields) >= 2 && strings.TrimSuffix(fields[1], ",") == unit {
			return true
		}
	}
	return false
}
