package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/samletnorge/assist/schedule"
)

func main() {
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	setupShutdownListener(appCancel)

	assist, err := NewAssist(appCtx,
		WithAppName("Assist v1.0"),
	)

	if err != nil {
		log.Fatal("Failed to initialize Assist:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      assist.config.AppName,
		ErrorHandler: jsonErrorHandler,
	})

	mapRoutes(app, assist)
	startReminderJob(appCtx, assist)

	go func() {
		<-appCtx.Done()
		log.Println("Shutting down HTTP server...")
		app.Shutdown()
	}()

	log.Fatal(app.Listen(fmt.Sprintf(":%d", assist.config.Port)))
}

// jsonErrorHandler keeps failure responses in the same JSON envelope as
// success ones.
func jsonErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"message": "request failed",
	})
}

func setupShutdownListener(appCancel context.CancelFunc) {
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutdown signal received")
		appCancel()
	}()
}

// startReminderJob wires the once-daily garden reminder sweep.
func startReminderJob(ctx context.Context, assist *Assist) {
	job := schedule.NewReminderJob(assist.service, assist.mailer)
	job.Start(ctx, 24*time.Hour)
}

func mapRoutes(app *fiber.App, assist *Assist) {
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	api := app.Group("/api")

	gardenHandler := schedule.NewGardenHandler(assist.cat, assist.service)

	schedule.RegisterGardenRoutes(api, gardenHandler)
}
