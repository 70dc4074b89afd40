package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"time"

	"backend-mapty/internal/app"
	"backend-mapty/internal/bridge"
	"backend-mapty/internal/config"
	"backend-mapty/internal/render"
	"backend-mapty/internal/shared/geo"
	"backend-mapty/internal/storage"
	"backend-mapty/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App        *fiber.App
	Cfg        config.Config
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Stream     *stream.Hub
	Controller *app.Controller
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	fiberApp := fiber.New()
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	if cfg.StreamTopic == "" {
		cfg.StreamTopic = "workouts"
	}

	s := &Server{
		App:    fiberApp,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

// Close releases the stream hub's redis subscription.
func (s *Server) Close() error {
	return s.Stream.Close()
}

// newSlot picks the storage backend named by cfg, falling back to memory when
// the backing connection is missing.
func newSlot(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) storage.Slot {
	key := cfg.StorageKey
	if key == "" {
		key = "workouts"
	}

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if db == nil {
			log.Printf("storage driver postgres without connection, using memory")
			return storage.NewMemorySlot()
		}
		slot := storage.NewPostgresSlot(db, key)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := slot.EnsureSchema(ctx); err != nil {
			log.Printf("storage schema failed, using memory: %v", err)
			return storage.NewMemorySlot()
		}
		return slot
	case config.DriverMemory:
		return storage.NewMemorySlot()
	default:
		if redisClient == nil {
			log.Printf("storage driver redis without connection, using memory")
			return storage.NewMemorySlot()
		}
		return storage.NewRedisSlot(redisClient, key)
	}
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	assets, err := fs.Sub(render.Assets, "assets")
	if err != nil {
		log.Fatalf("embedded assets: %v", err)
	}
	s.App.Use("/assets", filesystem.New(filesystem.Config{Root: http.FS(assets)}))

	browser := bridge.NewBrowser(s.Stream, s.Cfg.StreamTopic, bridge.Tiles{
		URL:         s.Cfg.TileURL,
		Attribution: s.Cfg.TileAttribution,
	})
	locator := bridge.NewLocator()
	s.Controller = app.NewController(app.Deps{
		Store:   storage.NewStore(newSlot(s.Cfg, s.DB, s.Redis)),
		Locator: locator,
		View:    browser,
		Zoom:    s.Cfg.MapZoom,
		NewMap: func(container string, center geo.Coordinates, zoom int) app.Map {
			return browser.CreateMap(container, center, zoom)
		},
	})

	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
	app.RegisterRoutes(s.App, s.Controller, locator, browser, s.Cfg.StreamTopic)
}
