package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/appservers/customer-api/internal/api/metrics"
)

const (
	probeTimeout  = 3 * time.Second
	heapWarnRatio = 0.9
)

// Pinger is the database reachability probe used by health checks.
// *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service status against the database dependency.
type HealthHandler struct {
	db        Pinger
	server    string
	version   string
	env       string
	startedAt time.Time
}

func NewHealthHandler(db Pinger, serverName, version, env string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		server:    serverName,
		version:   version,
		env:       env,
		startedAt: time.Now(),
	}
}

type healthResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Uptime      float64 `json:"uptime"`
	Timestamp   string  `json:"timestamp"`
	Server      string  `json:"server"`
	Version     string  `json:"version"`
	Environment string  `json:"environment"`
	Database    string  `json:"database"`
	Error       string  `json:"error,omitempty"`
}

// Basic handles GET /health, a lightweight database reachability probe.
//
// @Summary      Basic health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Basic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	resp := healthResponse{
		Uptime:      time.Since(h.startedAt).Seconds(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Server:      h.server,
		Version:     h.version,
		Environment: h.env,
		Database:    "disconnected",
	}

	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Message = "service unavailable"
		resp.Error = err.Error()
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	resp.Status = "healthy"
	resp.Message = "OK"
	resp.Database = "connected"
	return c.JSON(http.StatusOK, resp)
}

type dbCheck struct {
	Status         string `json:"status"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	Error          string `json:"error,omitempty"`
}

type memCheck struct {
	Status       string `json:"status"`
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapSys      uint64 `json:"heap_sys"`
	UsagePercent int    `json:"usage_percent"`
}

type detailedChecks struct {
	Database dbCheck  `json:"database"`
	Memory   memCheck `json:"memory"`
}

type detailedHealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Server      string         `json:"server"`
	Version     string         `json:"version"`
	Environment string         `json:"environment"`
	Uptime      float64        `json:"uptime"`
	Checks      detailedChecks `json:"checks"`
}

// Detailed handles GET /health/detailed, which adds probe latency and heap
// usage.
// The rollup is degraded when a sub-check warns while connectivity holds,
// unhealthy when connectivity fails.
//
// @Summary      Detailed health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  detailedHealthResponse
// @Failure      503  {object}  detailedHealthResponse
// @Router       /health/detailed [get]
func (h *HealthHandler) Detailed(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	resp := detailedHealthResponse{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Server:      h.server,
		Version:     h.version,
		Environment: h.env,
		Uptime:      time.Since(h.startedAt).Seconds(),
	}

	start := time.Now()
	err := h.db.Ping(ctx)
	elapsed := time.Since(start)
	metrics.HealthProbeDuration.Observe(elapsed.Seconds())

	if err != nil {
		resp.Status = "unhealthy"
		resp.Checks.Database = dbCheck{
			Status:         "unhealthy",
			ResponseTimeMs: elapsed.Milliseconds(),
			Error:          err.Error(),
		}
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	resp.Checks.Database = dbCheck{Status: "healthy", ResponseTimeMs: elapsed.Milliseconds()}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	memStatus := "healthy"
	usage := 0
	if ms.HeapSys > 0 {
		ratio := float64(ms.HeapAlloc) / float64(ms.HeapSys)
		usage = int(ratio * 100)
		if ratio > heapWarnRatio {
			memStatus = "warning"
		}
	}
	resp.Checks.Memory = memCheck{
		Status:       memStatus,
		HeapAlloc:    ms.HeapAlloc,
		HeapSys:      ms.HeapSys,
		UsagePercent: usage,
	}

	resp.Status = "healthy"
	if memStatus != "healthy" {
		resp.Status = "degraded"
	}
	return c.JSON(http.StatusOK, resp)
}
