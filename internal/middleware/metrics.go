package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehaven_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ModerationActions counts approve/reject decisions by content type.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehaven_moderation_actions_total",
		Help: "Total number of moderation decisions by content type and action",
	}, []string{"content_type", "action"})

	// VerificationEmails counts verification email dispatch attempts by outcome.
	VerificationEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehaven_verification_emails_total",
		Help: "Total number of verification emails by outcome",
	}, []string{"outcome"})
)

// InitMetrics creates the Prometheus HTTP metrics middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware adapts the fiberprometheus middleware into a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
