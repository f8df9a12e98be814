package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/codyseavey/sneaker-tracker/internal/metrics"
)

// instrumented records metrics and logs failures for every operation of the
// wrapped store. Errors are returned unchanged.
type instrumented struct {
	Store
	log *zap.Logger
}

// Instrument wraps store with Prometheus metrics and error logging.
func Instrument(store Store, log *zap.Logger) Store {
	return &instrumented{Store: store, log: log}
}

func (s *instrumented) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.Store.Load(ctx, key)
	s.observe("load", key, start, err)
	return data, err
}

func (s *instrumented) Save(ctx context.Context, key string, payload []byte) error {
	start := time.Now()
	err := s.Store.Save(ctx, key, payload)
	s.observe("save", key, start, err)
	return err
}

func (s *instrumented) observe(op, key string, start time.Time, err error) {
	driver := string(s.Driver())
	metrics.StorageOperationDuration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = "error"
		s.log.Error("Storage operation failed",
			zap.String("driver", driver),
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err))
	}
	metrics.StorageOperationsTotal.WithLabelValues(driver, op, result).Inc()
}
