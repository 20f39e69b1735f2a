package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/communities-choice/portal-auth/internal/config"
	"github.com/communities-choice/portal-auth/internal/observability"
	apperrors "github.com/communities-choice/portal-auth/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: CORS, no-store
// caching, error handling and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, corsCfg config.CORSConfig, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(noStoreMiddleware())
	app.Use(corsMiddleware(corsCfg))
	// The logger sits outside the error handler so it observes the
	// status the error handler actually wrote.
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

// corsMiddleware allows the single configured origin with credentials.
// The origin is never a wildcard: credentialed requests forbid it. When
// no origin is configured (local development) the request origin is
// reflected, matching the behavior the portal was deployed with.
func corsMiddleware(cfg config.CORSConfig) fiber.Handler {
	corsConfig := cors.Config{
		AllowCredentials: true,
		AllowHeaders:     "Content-Type, Authorization",
		AllowMethods:     "GET,POST,OPTIONS",
	}
	if cfg.AllowedOrigin != "" {
		corsConfig.AllowOrigins = cfg.AllowedOrigin
	} else {
		corsConfig.AllowOriginsFunc = func(string) bool { return true }
	}
	return cors.New(corsConfig)
}

// noStoreMiddleware keeps session responses out of shared caches.
func noStoreMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}
