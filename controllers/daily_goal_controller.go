package controllers

import (
	"net/http"
	"time"

	"github.com/Mark-Bosco/Clear-Meals/services"

	"github.com/gin-gonic/gin"
)

// GET /goals?date=2025-01-15 — targets plus consumed/percent for the day.
func GetGoals(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	goal, progress, err := services.GetGoalsAndProgress(c.GetUint("userID"), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goal, "progress": progress})
}

type GoalsInput struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sodium   float64 `json:"sodium"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// PUT /goals
func UpdateGoals(c *gin.Context) {
	var input GoalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.UpsertGoals(c.GetUint("userID"),
		input.Calories, input.Protein, input.Carbs, input.Fat,
		input.Sodium, input.Fiber, input.Sugar)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "goals updated"})
}
