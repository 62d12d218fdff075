package routes

import (
	"github.com/Mark-Bosco/Clear-Meals/controllers"
	"github.com/Mark-Bosco/Clear-Meals/middlewares"
	"github.com/Mark-Bosco/Clear-Meals/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	hub := services.NewRealtimeHub()
	mealCtl := controllers.NewMealController(hub)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/verify", controllers.VerifyEmail)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot", controllers.ForgotPassword)
		auth.POST("/reset", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/account", controllers.DeleteAccount)
	}

	// Food lookup and scaling
	food := r.Group("/food")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/search", controllers.SearchFoods)
		food.GET("/autocomplete", controllers.AutocompleteFoods)
		food.GET("/:id", controllers.GetFood)
		food.POST("/:id/scale", controllers.ScaleFood)
	}

	// Daily logs
	logs := r.Group("/log")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.GET("", mealCtl.ListLogDates)
		logs.GET("/:date", mealCtl.GetDailyLog)
		logs.POST("/:date/meals/:type", mealCtl.SaveMeal)
		logs.PUT("/:date/meals/:type/foods/:index", mealCtl.SaveFoodAt)
		logs.DELETE("/:date/meals/:type/foods/:foodId", mealCtl.DeleteFood)
	}

	// Daily goals
	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.GET("", controllers.GetGoals)
		goals.PUT("", controllers.UpdateGoals)
	}

	// Realtime log updates
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("", rtCtl.LogUpdatesWS)
	}

	return r
}
