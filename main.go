package main

import (
	"github.com/acr-platform/api-go/config"
	"github.com/acr-platform/api-go/routes"
	"github.com/acr-platform/api-go/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := config.InitLogger(cfg)
	defer log.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalw("database initialization failed", "error", err)
	}
	if err := config.SeedAdmin(db, cfg); err != nil {
		log.Fatalw("admin seeding failed", "error", err)
	}

	store, err := storage.New(cfg.UploadDir, cfg.AllowedExtensions)
	if err != nil {
		log.Fatalw("upload store initialization failed", "error", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")
	r.Use(sessions.Sessions("acr_session", cookie.NewStore([]byte(cfg.SessionSecret))))

	routes.SetupRoutes(r, db, store, cfg, log)

	log.Infow("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}
