// Package webapi wires the Fiber application for the FX conversion service.
package webapi

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/paystreet/fx/pkg/provider"
	fxsvc "github.com/paystreet/fx/pkg/service/fx"
	"github.com/paystreet/fx/webapi/common"
	fxapi "github.com/paystreet/fx/webapi/fx"
)

// New builds the Fiber app with middleware and all FX routes registered.
func New(svc *fxsvc.Service, diag provider.Diagnoser, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "PayStreet FX",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, fiber.StatusTooManyRequests)
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "PayStreet FX service is running", fiber.Map{
			"service": "fx-conversion",
		})
	})

	fxapi.Routes(app, svc, diag, logger)

	return app
}
