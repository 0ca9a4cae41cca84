package routes

import (
	"github.com/edufeedback/edu_feedback/handlers"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/gofiber/fiber/v2"
)

func FavoriteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	favorites := api.Group("/favorites", middleware.Protected(), middleware.StudentRequired())
	favorites.Get("", handlers.GetMyFavorites)
	favorites.Post("/:teacherId", handlers.AddFavorite)
	favorites.Delete("/:teacherId", handlers.RemoveFavorite)
}
