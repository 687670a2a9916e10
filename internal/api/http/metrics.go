package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/launcher/internal/infrastructure/monitoring"
)

// SnapshotSource produces metric summaries
type SnapshotSource interface {
	GetSnapshot() (monitoring.Snapshot, error)
}

// MetricsAggregator serves a JSON view of the Prometheus registry
type MetricsAggregator struct {
	metrics SnapshotSource
}

// NewMetricsAggregator creates a metrics aggregator
func NewMetricsAggregator(metrics SnapshotSource) *MetricsAggregator {
	return &MetricsAggregator{metrics: metrics}
}

// GetAggregatedMetrics returns request, resolution and logo counters
func (ma *MetricsAggregator) GetAggregatedMetrics(c *gin.Context) {
	snapshot, err := ma.metrics.GetSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
