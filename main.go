// file: main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/databases"
	"sekolahku_backend/internals/middlewares"
	routes "sekolahku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	databases.ConnectDB()
	databases.TunePool()

	app := fiber.New(fiber.Config{
		AppName:     "Sekolahku Backend",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	// ✅ Middleware global
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.CorsMiddleware())
	app.Use(middlewares.GlobalRateLimiter())
	app.Use(requestid.New())
	app.Use(compress.New())
	app.Use(etag.New())

	routes.SetupRoutes(app, databases.DB)

	// Graceful shutdown: tunggu koneksi selesai, lalu tutup pool DB
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	port := configs.GetEnv("PORT", "3000")
	log.Printf("🚀 Listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("listen error: %v", err)
	}

	databases.CloseDB()
	log.Println("👋 Bye")
}
