package server

import (
	"log"
	"os"

	"legal-consult-be/internal/bootstrap"
	"legal-consult-be/internal/config"
	"legal-consult-be/internal/pkg/serverutils"
	ws "legal-consult-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Static
	app.Static("/uploads", "./uploads")

	// Routes
	registerRoutes(app, container)
	registerWebsocket(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)
	c.LawyerController.RegisterRoutes(api)

	c.BookingController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)
}

// registerWebsocket upgrades /ws connections. The token travels as a query
// parameter because browsers cannot set headers on websocket handshakes.
func registerWebsocket(app *fiber.App, c *bootstrap.Container) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}

		tokenStr := ctx.Query("token")
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				secret = "default_secret"
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.ErrUnauthorized
		}
		userIdStr, _ := claims["user_id"].(string)
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		ctx.Locals("ws_user_id", userId)
		return ctx.Next()
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		userId, ok := conn.Locals("ws_user_id").(uuid.UUID)
		if !ok {
			conn.Close()
			return
		}
		ws.ServeWs(c.WebSocketHub, conn, userId)
	}))
}
