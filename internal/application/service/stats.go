package service

import (
	"time"

	"go.uber.org/zap"
)

type LookupSource string

const (
	SourceCache LookupSource = "cache"
	SourceDB    LookupSource = "db"
)

// LookupStats tells where a read was served from and how long each tier took.
// DBMs stays zero on a cache hit.
type LookupStats struct {
	Source  LookupSource
	CacheMs float64
	DBMs    float64
}

func (st LookupStats) fields() []zap.Field {
	fs := []zap.Field{
		zap.String("source", string(st.Source)),
		zap.Float64("cache_ms", st.CacheMs),
	}
	if st.Source == SourceDB {
		fs = append(fs, zap.Float64("db_ms", st.DBMs))
	}
	return fs
}

// sinceMs is the elapsed time in milliseconds with microsecond precision.
func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
