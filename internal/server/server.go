package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/mailbridge/mailbridge/internal/controllers"
	"github.com/mailbridge/mailbridge/internal/version"
)

type HTTPServerDependencies struct {
	ExecutorController *controllers.ExecutorController
	TriggerController  *controllers.TriggerController
	CallbackController *controllers.CallbackController
	AdminController    *controllers.AdminController
}

func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "mailbridge-executor",
	})

	router.Use(cors.New())
	router.Use(logger.New())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "mailbridge-executor",
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Post("/executions", deps.ExecutorController.ExecuteAction)
	router.Post("/peek-data", deps.ExecutorController.PeekData)
	router.Post("/connection-test", deps.ExecutorController.TestConnection)

	// Management surface for the host: push routes and credentials into the
	// running executor, list executions started by trigger deliveries.
	router.Post("/routes", deps.AdminController.RegisterRoute)
	router.Post("/credentials", deps.AdminController.SetCredential)
	router.Get("/executions", deps.AdminController.ListExecutions)

	// Webhook ingress; the handler itself decides whether the delivery is
	// kept or discarded, the route always answers 200.
	router.Post("/hooks/:routeID", deps.TriggerController.HandleWebhook)

	// Signed resume callbacks from send-and-wait notifications. GET serves
	// approval clicks and free-text forms, POST serves form submissions.
	router.Get("/callbacks/:token", deps.CallbackController.HandleCallback)
	router.Post("/callbacks/:token", deps.CallbackController.HandleCallback)

	return router
}
