package model

import (
	"time"

	"github.com/sscarsdale-chl/donutshop/pkg/domain/types"
)

// HealthStatus is the body of the local API's liveness check. The desktop shell polls it
// to learn which build it is talking to before it sends workspace requests.
type HealthStatus struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Version       string    `json:"version"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// NewHealthStatus reports a healthy process that started at startedAt.
func NewHealthStatus(startedAt, now time.Time) *HealthStatus {
	uptime := now.Sub(startedAt)
	if uptime < 0 {
		uptime = 0
	}
	return &HealthStatus{
		Status:        "healthy",
		Service:       types.AppName,
		Version:       types.Version,
		StartedAt:     startedAt.UTC(),
		UptimeSeconds: int64(uptime / time.Second),
	}
}
