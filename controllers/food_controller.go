package controllers

import (
	"net/http"
	"strconv"

	"github.com/Mark-Bosco/Clear-Meals/services"

	"github.com/gin-gonic/gin"
)

// GET /food/search?q=banana&page=0
func SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

	foodSvc := services.NewFoodService(services.NewFatSecretService())
	results, err := foodSvc.Search(query, page)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// GET /food/autocomplete?q=ban
func AutocompleteFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	foodSvc := services.NewFoodService(services.NewFatSecretService())
	suggestions, err := foodSvc.Autocomplete(query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GET /food/:id — full serving list with synthesized oz/gram servings.
func GetFood(c *gin.Context) {
	foodSvc := services.NewFoodService(services.NewFatSecretService())
	food, err := foodSvc.GetFood(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"food": food})
}
