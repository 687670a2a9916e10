package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

// Version is reported by the root and health endpoints
const Version = "1.0.0"

// TileResolver builds the launcher tile list
type TileResolver interface {
	Resolve(ctx context.Context) []types.Tile
}

// Pinger reports whether the record store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers contains all HTTP handlers
type Handlers struct {
	resolver  TileResolver
	store     Pinger
	benchPath string
	logger    *zap.Logger
	started   time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(resolver TileResolver, store Pinger, benchPath string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		resolver:  resolver,
		store:     store,
		benchPath: benchPath,
		logger:    logger,
		started:   time.Now(),
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "App Launcher",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	status := http.StatusOK
	database := gin.H{"connected": true}

	if h.store == nil {
		database = gin.H{"connected": false}
		status = http.StatusServiceUnavailable
	} else if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Record store unreachable", zap.Error(err))
		database = gin.H{"connected": false, "error": err.Error()}
		status = http.StatusServiceUnavailable
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status":   state,
		"version":  Version,
		"bench":    h.benchPath,
		"database": database,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}

// GetApps returns the launcher tiles wrapped in the host's method envelope
func (h *Handlers) GetApps(c *gin.Context) {
	tiles := h.resolver.Resolve(c.Request.Context())
	if tiles == nil {
		tiles = []types.Tile{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": tiles,
	})
}
