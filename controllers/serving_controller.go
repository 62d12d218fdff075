package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Mark-Bosco/Clear-Meals/models"
	"github.com/Mark-Bosco/Clear-Meals/services"

	"github.com/gin-gonic/gin"
)

// ScaleInput carries the editing screen's state plus the action the user
// just took. The client holds the screen state between calls; the server
// rebuilds the session, applies the action, and returns the new state.
// Amount/calorie values arrive as raw input text: anything non-numeric
// or negative means "field cleared" and scales to zero, never an error.
type ScaleInput struct {
	Action          string `json:"action" binding:"required"` // load | select | amount | calories | reset
	ServingIndex    int    `json:"serving_index"`
	Synced          bool   `json:"synced"`
	CurrentCalories string `json:"current_calories"`
	Value           string `json:"value"`
	CalorieOverride string `json:"calorie_override"`
}

// parseInput clamps user-entered numbers: non-numeric or negative input
// is treated as a cleared field.
func parseInput(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// POST /food/:id/scale
func ScaleFood(c *gin.Context) {
	var input ScaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foodSvc := services.NewFoodService(services.NewFatSecretService())
	food, err := foodSvc.GetFood(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ss, err := restoreSession(food, input)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrMalformedServing) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, servingResponse(ss))
}

func restoreSession(food *models.ReferenceFood, input ScaleInput) (*services.ServingSession, error) {
	if input.Action == "load" {
		// Edit-reopen: the saved calorie value reconstructs the scale,
		// consumed exactly once.
		if override, err := strconv.ParseFloat(input.CalorieOverride, 64); err == nil && override > 0 {
			return services.ResumeServingSession(food, override)
		}
		return services.NewServingSession(food)
	}

	// Rebuild the state the screen was showing before this action.
	ss, err := services.NewServingSession(food)
	if err != nil {
		return nil, err
	}
	if err := ss.SelectServing(input.ServingIndex); err != nil {
		return nil, err
	}
	if input.Synced {
		if err := ss.SetCalories(parseInput(input.CurrentCalories)); err != nil {
			return nil, err
		}
	}

	switch input.Action {
	case "select":
		index, convErr := strconv.Atoi(input.Value)
		if convErr != nil {
			return nil, convErr
		}
		err = ss.SelectServing(index)
	case "amount":
		err = ss.SetAmount(parseInput(input.Value))
	case "calories":
		err = ss.SetCalories(parseInput(input.Value))
	case "reset":
		err = ss.Reset()
	default:
		return nil, errors.New("unknown action " + input.Action)
	}
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func servingResponse(ss *services.ServingSession) gin.H {
	curr := ss.Current()
	return gin.H{
		"serving_index": ss.Index(),
		"synced":        ss.Synced(),
		"serving": gin.H{
			"amount":                strconv.FormatFloat(curr.Amount, 'f', 1, 64),
			"unit":                  curr.Unit,
			"metric_serving_amount": curr.MetricServingAmount.Fixed(1),
			"metric_serving_unit":   curr.MetricServingUnit,
			"calories":              strconv.FormatFloat(curr.Calories, 'f', -1, 64),
			"fat":                   curr.Fat.String(),
			"saturated_fat":         curr.SaturatedFat.String(),
			"trans_fat":             curr.TransFat.String(),
			"cholesterol":           curr.Cholesterol.String(),
			"sodium":                curr.Sodium.String(),
			"carbohydrate":          curr.Carbohydrate.String(),
			"fiber":                 curr.Fiber.String(),
			"sugar":                 curr.Sugar.String(),
			"protein":               curr.Protein.String(),
			"vitamin_a":             curr.VitaminA.String(),
			"vitamin_c":             curr.VitaminC.String(),
			"calcium":               curr.Calcium.String(),
			"iron":                  curr.Iron.String(),
		},
		"item": ss.Flatten(),
	}
}
