package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// ServiceInfo is the static identity reported by the banner and info routes.
type ServiceInfo struct {
	Server      string
	Port        string
	Environment string
	Version     string
	DBHost      string
	DBPort      int
	DBName      string
}

// RootHandler serves the service banner and runtime info endpoints.
type RootHandler struct {
	info      ServiceInfo
	startedAt time.Time
}

func NewRootHandler(info ServiceInfo) *RootHandler {
	return &RootHandler{info: info, startedAt: time.Now()}
}

// Banner handles GET /.
//
// @Summary      Service banner
// @Tags         info
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       / [get]
func (h *RootHandler) Banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("welcome to server %s", h.info.Server),
		"server":      h.info.Server,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.info.Environment,
		"version":     h.info.Version,
	})
}

// Info handles GET /info.
//
// @Summary      Server runtime info
// @Tags         info
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /info [get]
func (h *RootHandler) Info(c echo.Context) error {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return c.JSON(http.StatusOK, map[string]any{
		"server":      h.info.Server,
		"port":        h.info.Port,
		"environment": h.info.Environment,
		"version":     h.info.Version,
		"database": map[string]any{
			"host": h.info.DBHost,
			"port": h.info.DBPort,
			"name": h.info.DBName,
		},
		"uptime": time.Since(h.startedAt).Seconds(),
		"memory": map[string]any{
			"heap_alloc": ms.HeapAlloc,
			"heap_sys":   ms.HeapSys,
			"num_gc":     ms.NumGC,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
