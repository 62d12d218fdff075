package main

import (
	"github.com/Mark-Bosco/Clear-Meals/config"
	"github.com/Mark-Bosco/Clear-Meals/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter()
	r.Run(":8080")
}
