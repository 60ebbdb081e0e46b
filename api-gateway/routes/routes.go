package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/plataforma/labstock/api-gateway/config"
	"github.com/plataforma/labstock/api-gateway/health"
	"github.com/plataforma/labstock/api-gateway/middleware"
	"github.com/plataforma/labstock/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool // Requires authentication
	RequireAdmin bool // Requires admin role
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	// Public routes (no auth required)
	{
		Prefix:      "/auth",
		ServiceName: "platform",
		Description: "Authentication endpoints (login, register)",
	},
	{
		Prefix:      "/health",
		ServiceName: "platform",
		Description: "Health check endpoints",
	},

	// Authenticated routes
	{
		Prefix:      "/users",
		ServiceName: "platform",
		Description: "User profile and team membership endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/materials",
		ServiceName: "platform",
		Description: "Material catalog and stock endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/subjects",
		ServiceName: "platform",
		Description: "Subject catalog endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/groups",
		ServiceName: "platform",
		Description: "Class group endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/reservations",
		ServiceName: "platform",
		Description: "Reservation lifecycle endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/reservation-materials",
		ServiceName: "platform",
		Description: "Reservation material line-item endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/team-members",
		ServiceName: "platform",
		Description: "Reservation team member endpoints",
		RequireAuth: true,
	},

	// Admin routes
	{
		Prefix:       "/admin",
		ServiceName:  "platform",
		Description:  "Admin user management and statistics",
		RequireAuth:  true,
		RequireAdmin: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/gateway/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/gateway/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/gateway/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == health.StatusUnhealthy {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Circuit breaker stats
	app.Get("/gateway/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.GetAllStats())
	})

	// Cache invalidation (admin tooling)
	app.Delete("/gateway/cache", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Cache not available",
			})
		}
		if err := middleware.InvalidateCache(redisClient, middleware.CachePattern); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "Cache invalidated"})
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Labstock API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	if route.RequireAdmin {
		// Admin routes need both auth and admin check
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}
	// Public routes have no middleware

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
