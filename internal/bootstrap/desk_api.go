package bootstrap

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	desk "helpdesk_server/adapter/in/http"
	"helpdesk_server/config"
)

// NewAPI builds the dashboard HTTP application around an existing
// dependency graph.
func NewAPI(cfg *config.Config, deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.IsProduction(),

		// go-json over encoding/json for both directions
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 1 * 1024 * 1024, // 1MB, email bodies only
	})

	app.Use(recover.New())
	app.Use(desk.RequestIDMiddleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))

	desk.NewHealthHandler(deps.TicketRepo).Register(app)
	desk.NewTicketHandler(deps.TicketService, deps.Log).Register(app)
	desk.NewKnowledgeHandler(deps.KnowledgeService, deps.Log).Register(app)

	return app
}
