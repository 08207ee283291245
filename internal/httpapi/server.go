// Package httpapi exposes the pipeline over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/btwebgroup/contentlab/internal/config"
)

func NewServer(cfg *config.Config, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true, ReadTimeout: 30 * time.Second, WriteTimeout: 10 * time.Minute})
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	registerPipeline(app, cfg, logger)
	return app
}
