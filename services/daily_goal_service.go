package services

import (
	"errors"

	"github.com/Mark-Bosco/Clear-Meals/config"
	"github.com/Mark-Bosco/Clear-Meals/models"
	"gorm.io/gorm"
)

// GetGoalsAndProgress returns the user's targets alongside what the
// given day's log adds up to. Consumed values come straight from
// ComputeDayTotals — goals never store progress of their own.
func GetGoalsAndProgress(userID uint, date string) (*models.DailyGoal, map[string]interface{}, error) {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			goal = models.DailyGoal{UserID: userID}
		} else {
			return nil, nil, err
		}
	}

	mealSvc := NewMealService()
	log, err := mealSvc.GetDailyLog(userID, date)
	if err != nil {
		return &goal, nil, err
	}
	totals := ComputeDayTotals(log)

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		p := consumed / target
		if p > 1 {
			return 1
		}
		return p
	}

	progress := map[string]interface{}{
		"calories": map[string]float64{"consumed": totals.Calories, "goal": goal.Calories, "percent": pct(totals.Calories, goal.Calories)},
		"protein":  map[string]float64{"consumed": totals.Protein, "goal": goal.Protein, "percent": pct(totals.Protein, goal.Protein)},
		"carbs":    map[string]float64{"consumed": totals.Carbs, "goal": goal.Carbs, "percent": pct(totals.Carbs, goal.Carbs)},
		"fat":      map[string]float64{"consumed": totals.Fat, "goal": goal.Fat, "percent": pct(totals.Fat, goal.Fat)},
		"sodium":   map[string]float64{"consumed": totals.Sodium, "goal": goal.Sodium, "percent": pct(totals.Sodium, goal.Sodium)},
		"fiber":    map[string]float64{"consumed": totals.Fiber, "goal": goal.Fiber, "percent": pct(totals.Fiber, goal.Fiber)},
		"sugar":    map[string]float64{"consumed": totals.Sugar, "goal": goal.Sugar, "percent": pct(totals.Sugar, goal.Sugar)},
	}

	return &goal, progress, nil
}

func UpsertGoals(userID uint, calories, protein, carbs, fat, sodium, fiber, sugar float64) error {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{
			UserID:   userID,
			Calories: calories,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Sodium:   sodium,
			Fiber:    fiber,
			Sugar:    sugar,
		}
		return config.DB.Create(&goal).Error
	}
	if err != nil {
		return err
	}

	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fat = fat
	goal.Sodium = sodium
	goal.Fiber = fiber
	goal.Sugar = sugar
	return config.DB.Save(&goal).Error
}
