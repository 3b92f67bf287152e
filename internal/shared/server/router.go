package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/documents"
	"resume-ats/internal/reports"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

const (
	apiPrefix  = "/api/v1"
	healthPath = apiPrefix + "/health"
)

// Rate limit groups.
const (
	groupScore  = "SCORE"
	groupUpload = "UPLOAD"
	groupRead   = "READ"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	ReportHandler   *reports.Handler
	// Ping checks backing storage for the health endpoint; nil means always healthy.
	Ping func(context.Context) error
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.Use(
		middleware.Auth(healthPath),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        RateLimitRules(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst),
			DefaultGroup: groupRead,
			GroupFor:     rateLimitGroup,
		}),
	)

	api.GET("/health", healthHandler(deps.Ping))
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// RateLimitRules derives per-group buckets from the base rate. Uploads get half
// the scoring budget and reads four times as much. A zero rate disables limits.
func RateLimitRules(rps float64, burst int) map[string]middleware.RateLimitRule {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	uploadBurst := burst / 2
	if uploadBurst < 1 {
		uploadBurst = 1
	}
	return map[string]middleware.RateLimitRule{
		groupScore:  {Rate: rps, Burst: burst},
		groupUpload: {Rate: rps / 2, Burst: uploadBurst},
		groupRead:   {Rate: rps * 4, Burst: burst * 4},
	}
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return groupRead
	}
	switch c.FullPath() {
	case apiPrefix + "/documents":
		return groupUpload
	default:
		return groupScore
	}
}

func healthHandler(ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				respond.Error(c, http.StatusServiceUnavailable, "unavailable", "database unreachable", nil)
				return
			}
		}
		respond.OK(c, gin.H{"ok": true})
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
