package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// MongoPing pings the database with a server round trip.
func MongoPing(db *mongo.Database) PingFunc {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

// RedisPing returns nil when rdb is nil so a disabled Redis reads as
// "disabled" rather than unhealthy.
func RedisPing(rdb *redis.Client) PingFunc {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

// InfoHandler serves the informational and liveness endpoints.
type InfoHandler struct {
	env     string
	port    string
	started time.Time
	now     func() time.Time
}

func NewInfoHandler(env, port string) *InfoHandler {
	return &InfoHandler{env: env, port: port, started: time.Now(), now: time.Now}
}

type rootResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root handles GET /.
func (h *InfoHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{
		Success:   true,
		Message:   "Freelancer Platform API",
		Version:   Version,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Endpoints: map[string]string{
			"health": "/health",
			"auth":   "/api/auth",
			"jobs":   "/api/jobs",
			"docs":   "/swagger/index.html",
		},
	})
}

// Liveness handles GET /health and confirms the process is alive.
func (h *InfoHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"uptime":    h.now().Sub(h.started).Seconds(),
	})
}

// Diagnostics handles GET /api/health.
func (h *InfoHandler) Diagnostics(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"status":      "Server is running",
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"environment": h.env,
		"port":        h.port,
	})
}

// ReadinessHandler handles GET /health/ready by pinging every dependency.
type ReadinessHandler struct {
	deps map[string]PingFunc
}

// NewReadinessHandler takes dependency name to ping. A nil PingFunc marks
// the dependency as disabled.
func NewReadinessHandler(deps map[string]PingFunc) *ReadinessHandler {
	return &ReadinessHandler{deps: deps}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Success      bool                        `json:"success"`
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps))
	healthy := true

	for name, ping := range h.deps {
		if ping == nil {
			deps[name] = dependencyStatus{Status: "disabled"}
			continue
		}
		if err := ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Success:      healthy,
		Status:       status,
		Dependencies: deps,
	})
}
