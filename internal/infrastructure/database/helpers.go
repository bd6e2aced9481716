package database

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Close đóng pool. Gọi nhiều lần là no-op.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing connection pool")
	db.Pool.Close()
	db.Pool = nil
	return nil
}

// PoolStats là snapshot của connection pool
type PoolStats struct {
	AcquiredConns        int32
	IdleConns            int32
	TotalConns           int32
	MaxConns             int32
	AcquireCount         int64
	CanceledAcquireCount int64
	EmptyAcquireCount    int64
}

// Stats trả về snapshot hiện tại; zero value nếu pool chưa mở
func (db *PostgresDB) Stats() PoolStats {
	if db.Pool == nil {
		return PoolStats{}
	}

	s := db.Pool.Stat()
	return PoolStats{
		AcquiredConns:        s.AcquiredConns(),
		IdleConns:            s.IdleConns(),
		TotalConns:           s.TotalConns(),
		MaxConns:             s.MaxConns(),
		AcquireCount:         s.AcquireCount(),
		CanceledAcquireCount: s.CanceledAcquireCount(),
		EmptyAcquireCount:    s.EmptyAcquireCount(),
	}
}

// RegisterPoolMetrics exposes pool stats as gauges read at scrape time.
func (db *PostgresDB) RegisterPoolMetrics(reg prometheus.Registerer) error {
	gauges := map[string]func(PoolStats) float64{
		"acquired_conns":         func(s PoolStats) float64 { return float64(s.AcquiredConns) },
		"idle_conns":             func(s PoolStats) float64 { return float64(s.IdleConns) },
		"total_conns":            func(s PoolStats) float64 { return float64(s.TotalConns) },
		"max_conns":              func(s PoolStats) float64 { return float64(s.MaxConns) },
		"acquire_total":          func(s PoolStats) float64 { return float64(s.AcquireCount) },
		"canceled_acquire_total": func(s PoolStats) float64 { return float64(s.CanceledAcquireCount) },
		"empty_acquire_total":    func(s PoolStats) float64 { return float64(s.EmptyAcquireCount) },
	}

	for name, read := range gauges {
		read := read
		g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "catalog",
			Subsystem: "db_pool",
			Name:      name,
			Help:      "pgxpool " + name,
		}, func() float64 { return read(db.Stats()) })

		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}
