// Package metrics keeps process and business gauges in an embedded
// time-series store so the admin dashboard can chart them without an
// external collector.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

var (
	mu      sync.Mutex
	storage tstorage.Storage
)

// InitMetrics opens the time-series store under workdir/metrics.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// SetGauge records an instantaneous value for name.
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// IncrCounter records a counter increment for name. Consumers aggregate
// over a window, so each increment is stored as its own point.
func IncrCounter(name string, delta int64) {
	insert(name, float64(delta))
}

func insert(name string, value float64) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{{
		Metric:    name,
		DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
	}})
}

// LatestGauge returns the most recent value for name within the last
// hour, or zero when nothing was recorded.
func LatestGauge(name string) float64 {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return 0
	}
	end := time.Now().Unix()
	points, err := s.Select(name, nil, end-3600, end+1)
	if err != nil || len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Value
}

// SumCounter sums all points for name over the given window.
func SumCounter(name string, window time.Duration) float64 {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return 0
	}
	end := time.Now().Unix()
	points, err := s.Select(name, nil, end-int64(window.Seconds()), end+1)
	if err != nil {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum
}

// Close flushes and closes the underlying store.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
