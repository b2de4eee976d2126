package server

import (
	"errors"
	"strings"

	"backend-roamio/internal/admin"
	"backend-roamio/internal/auth"
	"backend-roamio/internal/bookings"
	"backend-roamio/internal/catalog"
	"backend-roamio/internal/chat"
	"backend-roamio/internal/config"
	"backend-roamio/internal/db"
	"backend-roamio/internal/logging"
	"backend-roamio/internal/metrics"
	"backend-roamio/internal/newsletter"
	"backend-roamio/internal/places"
	"backend-roamio/internal/rooms"
	"backend-roamio/internal/search"
	"backend-roamio/internal/stream"
	"backend-roamio/internal/wishlist"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     db.Querier
	Redis  *redis.Client
	Stream *stream.Hub
	Images afero.Fs
}

// NewServer wires every route onto a fresh fiber app. Images are read from
// the OS filesystem.
func NewServer(cfg config.Config, pool db.Querier, redisClient *redis.Client) *Server {
	return newServer(cfg, pool, redisClient, afero.NewOsFs())
}

func newServer(cfg config.Config, pool db.Querier, redisClient *redis.Client, fs afero.Fs) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "roamio",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	app.Use(logging.Middleware())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     pool,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
		Images: fs,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", metrics.Handler())
	s.App.Static("/datasets", s.Cfg.DatasetsDir)

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	adminOnly := auth.RequireRole(auth.RoleAdmin)

	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB)
	placeSvc := places.NewService(s.DB)
	identity := admin.NewIdentityClient(s.Cfg.IdentityAPIURL, s.Cfg.IdentityAPIKey, nil)

	search.RegisterRoutes(s.App, search.NewService(s.DB, search.NewImages(s.Images, s.Cfg.ImageRoot)))
	catalog.RegisterRoutes(s.App, catalog.NewService(s.DB), jwtMiddleware)
	places.RegisterRoutes(s.App.Group("/places"), placeSvc)
	wishlist.RegisterRoutes(s.App.Group("/wishlist"), wishlist.NewService(s.DB, placeSvc))
	chat.RegisterRoutes(s.App.Group("/chat"), chat.NewService(s.DB, s.Stream))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
	auth.RegisterRoutes(s.App.Group("/users"), authSvc, jwtMiddleware, adminOnly)
	rooms.RegisterRoutes(s.App.Group("/rooms"), rooms.NewService(s.DB), jwtMiddleware)
	bookings.RegisterRoutes(s.App.Group("/bookings"), bookings.NewService(s.DB), jwtMiddleware)
	admin.RegisterRoutes(s.App.Group("/admin"), admin.NewService(s.DB, identity), authSvc, jwtMiddleware, adminOnly)
	newsletter.RegisterRoutes(s.App.Group("/newsletter"), newsletter.NewService(s.DB))
}

// errorHandler renders every error as {"error": "..."}. Details of
// unexpected failures stay in the request log.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
