package monitoring

import (
	"strconv"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// Snapshot is a JSON friendly summary of the collected metrics
type Snapshot struct {
	Timestamp     time.Time        `json:"timestamp"`
	TotalRequests int64            `json:"total_requests"`
	TotalErrors   int64            `json:"total_errors"`
	Resolutions   map[string]int64 `json:"resolutions"`
	Logos         map[string]int64 `json:"logos"`
	LastTiles     int              `json:"last_tiles"`
	Resolves      uint64           `json:"resolves"`
	AvgResolveMs  float64          `json:"avg_resolve_ms"`
	UptimeSeconds float64          `json:"uptime_seconds"`
}

// GetUptimeSeconds returns the service uptime in seconds
func (m *Metrics) GetUptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}

// GetSnapshot summarises the registry. Server errors are 5xx responses.
func (m *Metrics) GetSnapshot() (Snapshot, error) {
	snap := Snapshot{
		Timestamp:     time.Now(),
		Resolutions:   map[string]int64{},
		Logos:         map[string]int64{},
		UptimeSeconds: m.GetUptimeSeconds(),
	}

	families, err := m.gatherer.Gather()
	if err != nil {
		return snap, err
	}

	for _, family := range families {
		switch family.GetName() {
		case "launcher_http_requests_total":
			for _, metric := range family.GetMetric() {
				count := int64(metric.GetCounter().GetValue())
				snap.TotalRequests += count
				if code, err := strconv.Atoi(label(metric, "status")); err == nil && code >= 500 {
					snap.TotalErrors += count
				}
			}
		case "launcher_app_resolutions_total":
			for _, metric := range family.GetMetric() {
				snap.Resolutions[label(metric, "tier")] = int64(metric.GetCounter().GetValue())
			}
		case "launcher_logos_total":
			for _, metric := range family.GetMetric() {
				snap.Logos[label(metric, "source")] = int64(metric.GetCounter().GetValue())
			}
		case "launcher_tiles":
			for _, metric := range family.GetMetric() {
				snap.LastTiles = int(metric.GetGauge().GetValue())
			}
		case "launcher_resolve_duration_seconds":
			for _, metric := range family.GetMetric() {
				h := metric.GetHistogram()
				snap.Resolves = h.GetSampleCount()
				if snap.Resolves > 0 {
					snap.AvgResolveMs = h.GetSampleSum() / float64(snap.Resolves) * 1000
				}
			}
		}
	}

	return snap, nil
}

func label(metric *dto.Metric, name string) string {
	for _, pair := range metric.GetLabel() {
		if pair.GetName() == name {
			return pair.GetValue()
		}
	}
	return ""
}
