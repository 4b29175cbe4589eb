package main

import (
	"fmt"

	"bakery/configs"
	"bakery/middlewares"
	"bakery/routes"
	"bakery/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatal().Err(err).Msg("seed admin failed")
	}
	if err := configs.SeedProducts(); err != nil {
		log.Fatal().Err(err).Msg("seed products failed")
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))

	// เสิร์ฟสลิปที่อัปโหลดไว้ให้จอ admin เปิดดู
	r.Static("/uploads", "./"+cfg.UploadDir)

	// realtime order feed
	hub := ws.NewOrderHub()
	go hub.Run()

	routes.RegisterRoutes(r, db, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("addr", addr).Msg("server running")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
