package app

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"library_backend/db"
	"library_backend/files"
	"library_backend/mail"
	"library_backend/session"
)

// Shorthand aliases for handlers.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	tokens  session.Store
	uploads *files.Store
	mailer  mail.Mailer
}

// Config is read from the environment at startup and handed to the
// components that need it.
type Config struct {
	WebOrigin string
	RedisAddr string
	RedisPwd  string
	TokenTTL  time.Duration

	UploadDir  string
	Extensions []string

	SMTP mail.Config

	AdminFullName string
	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

func (a *App) Tokens() session.Store { return a.tokens }
func (a *App) Uploads() *files.Store { return a.uploads }
func (a *App) Mailer() mail.Mailer   { return a.mailer }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		tokens:  session.NewRedisStore(rdb, cfg.TokenTTL),
		uploads: files.NewStore(cfg.UploadDir, cfg.Extensions),
		mailer:  mail.NewSMTPMailer(cfg.SMTP),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(get("TOKEN_TTL_SECONDS", "86400") + "s"); err == nil {
		ttl = d
	}

	var exts []string
	for _, e := range strings.Split(os.Getenv("ALLOWED_EXTENSIONS"), ",") {
		if s := strings.TrimSpace(e); s != "" {
			exts = append(exts, s)
		}
	}

	return Config{
		WebOrigin:  get("WEB_ORIGIN", "http://localhost:3000"),
		RedisAddr:  get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:   os.Getenv("REDIS_PASSWORD"),
		TokenTTL:   ttl,
		UploadDir:  get("UPLOAD_DIR", "./uploads"),
		Extensions: exts,
		SMTP:       mail.LoadConfig(),

		AdminFullName: get("ADMIN_FULL_NAME", "Administrator"),
		AdminEmail:    get("ADMIN_EMAIL", "admin@admin.com"),
		AdminUsername: get("ADMIN_USERNAME", "admin"),
		AdminPassword: get("ADMIN_PASSWORD", "admin123"),
	}
}
