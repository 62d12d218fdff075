package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mark-Bosco/Clear-Meals/models"
	"github.com/Mark-Bosco/Clear-Meals/services"

	"github.com/gin-gonic/gin"
)

// MealController serves the daily-log endpoints and notifies connected
// clients after every successful write.
type MealController struct {
	RT *services.RealtimeHub
}

func NewMealController(rt *services.RealtimeHub) *MealController {
	return &MealController{RT: rt}
}

func parseDate(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return "", false
	}
	return date, true
}

func parseMealType(c *gin.Context) (models.MealType, bool) {
	mealType := models.MealType(c.Param("type"))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return "", false
	}
	return mealType, true
}

// GET /log/:date — the day's meals plus derived day totals. A date with
// no saved log comes back as an empty log, not an error.
func (mc *MealController) GetDailyLog(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}
	userID := c.GetUint("userID")

	mealSvc := services.NewMealService()
	log, err := mealSvc.GetDailyLog(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"log":    log,
		"totals": services.ComputeDayTotals(log),
	})
}

// GET /log?from=2025-01-01&to=2025-01-31 — dates that have a saved log.
func (mc *MealController) ListLogDates(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if _, err := time.Parse("2006-01-02", from); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}

	mealSvc := services.NewMealService()
	dates, err := mealSvc.ListLogDates(c.GetUint("userID"), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// POST /log/:date/meals/:type — commit a session's chosen foods. The
// draft stays client-side until this call; cancelling the session never
// reaches the server.
func (mc *MealController) SaveMeal(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}
	mealType, ok := parseMealType(c)
	if !ok {
		return
	}

	var body struct {
		Foods []models.FoodListItem `json:"foods" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := services.NewDraftList()
	for _, f := range body.Foods {
		draft.Add(f)
	}

	userID := c.GetUint("userID")
	mealSvc := services.NewMealService()
	log, err := mealSvc.SaveMeal(userID, date, mealType, draft.Items())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	draft.Clear()

	mc.RT.BroadcastLogUpdate(userID, date)
	c.JSON(http.StatusCreated, gin.H{
		"log":    log,
		"totals": services.ComputeDayTotals(log),
	})
}

// PUT /log/:date/meals/:type/foods/:index — replace one saved food with
// an edited version (append when index is -1).
func (mc *MealController) SaveFoodAt(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}
	mealType, ok := parseMealType(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	var item models.FoodListItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	mealSvc := services.NewMealService()
	log, err := mealSvc.SaveFoodAt(userID, date, mealType, item, index)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "meal has not been saved yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mc.RT.BroadcastLogUpdate(userID, date)
	c.JSON(http.StatusOK, gin.H{
		"log":    log,
		"totals": services.ComputeDayTotals(log),
	})
}

// DELETE /log/:date/meals/:type/foods/:foodId — remove every entry with
// the food id and recompute totals.
func (mc *MealController) DeleteFood(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}
	mealType, ok := parseMealType(c)
	if !ok {
		return
	}

	userID := c.GetUint("userID")
	mealSvc := services.NewMealService()
	log, err := mealSvc.DeleteFood(userID, date, mealType, c.Param("foodId"))
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "meal has not been saved yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mc.RT.BroadcastLogUpdate(userID, date)
	c.JSON(http.StatusOK, gin.H{
		"log":    log,
		"totals": services.ComputeDayTotals(log),
	})
}
