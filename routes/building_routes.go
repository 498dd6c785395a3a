package routes

import (
	"github.com/casafind/rental_marketplace/handlers"
	"github.com/casafind/rental_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func BuildingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	buildings := api.Group("/buildings")
	buildings.Get("", handlers.ListBuildings)
	buildings.Get("/:buildingId", handlers.GetBuilding)
	buildings.Post("", middleware.Protected(), middleware.OperatorRequired(), handlers.CreateBuilding)
	buildings.Put("/:buildingId", middleware.Protected(), middleware.OperatorRequired(), handlers.UpdateBuilding)
	buildings.Delete("/:buildingId", middleware.Protected(), middleware.OperatorRequired(), handlers.DeleteBuilding)

	complexes := api.Group("/residential-complexes")
	complexes.Get("", handlers.ListResidentialComplexes)
	complexes.Get("/:complexId", handlers.GetResidentialComplex)
	complexes.Post("", middleware.Protected(), middleware.OperatorRequired(), handlers.CreateResidentialComplex)
	complexes.Put("/:complexId", middleware.Protected(), middleware.OperatorRequired(), handlers.UpdateResidentialComplex)
	complexes.Delete("/:complexId", middleware.Protected(), middleware.OperatorRequired(), handlers.DeleteResidentialComplex)
}
