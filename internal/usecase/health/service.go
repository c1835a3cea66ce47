package health

import (
	"context"
	"time"
)

// Status represents the overall health status.
type Status string

const (
	// Healthy indicates the store answered the probe.
	Healthy Status = "healthy"
	// Unhealthy indicates the probe failed.
	Unhealthy Status = "unhealthy"
)

// DatabaseConnected is reported for a reachable store.
const DatabaseConnected = "connected"

// Report is the outcome of one probe. Error is set only when unhealthy.
type Report struct {
	Status    Status
	Database  string
	Error     string
	Timestamp time.Time
}

// Service probes the store.
type Service struct {
	db      DBPinger
	timeout time.Duration
	now     func() time.Time
}

// New creates a Service. A non-positive timeout disables the probe deadline.
func New(db DBPinger, timeout time.Duration) *Service {
	return &Service{db: db, timeout: timeout, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Check pings the store. Failures are reported in the Report, never returned.
func (s *Service) Check(ctx context.Context) Report {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.db.Ping(ctx)
	ts := s.now().UTC()
	if err != nil {
		return Report{Status: Unhealthy, Error: err.Error(), Timestamp: ts}
	}
	return Report{Status: Healthy, Database: DatabaseConnected, Timestamp: ts}
}
