package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"newsapi/internal/service"
)

// RegisterRoutes attaches the health checks and the news API to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, newsSvc service.NewsService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())

	news := app.Group("/api/news")
	news.Get("", ListNews(newsSvc))
	news.Post("", CreateNews(newsSvc))
	news.Get("/:id", GetNews(newsSvc))
	news.Put("/:id", UpdateNews(newsSvc))
	news.Delete("/:id", DeleteNews(newsSvc))
	news.Get("/:id/image", GetNewsImage(newsSvc))
	news.Put("/:id/image", UpdateNewsImage(newsSvc))
	news.Delete("/:id/image", DeleteNewsImage(newsSvc))
}
