package database

import (
	"context"
	"time"

	"user-management/internal/apperr"
	"user-management/internal/metrics"
	"user-management/internal/models"
)

// instrumented records Prometheus counters around another repository.
type instrumented struct {
	next UserRepository
}

func Instrument(next UserRepository) UserRepository {
	return &instrumented{next: next}
}

func (r *instrumented) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case apperr.Is(err, apperr.KindValidation):
		result = "invalid"
	default:
		result = "error"
	}

	backend := r.next.Backend()
	metrics.UserStoreOperationsTotal.WithLabelValues(backend, op, result).Inc()
	metrics.UserStoreOperationDurationSeconds.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}

func (r *instrumented) Backend() string {
	return r.next.Backend()
}

func (r *instrumented) EnsureSchema(ctx context.Context) (err error) {
	defer func(start time.Time) { r.observe("ensure_schema", start, err) }(time.Now())
	return r.next.EnsureSchema(ctx)
}

func (r *instrumented) Insert(ctx context.Context, fullName, username string) (user *models.User, err error) {
	defer func(start time.Time) { r.observe("insert", start, err) }(time.Now())
	return r.next.Insert(ctx, fullName, username)
}

func (r *instrumented) Find(ctx context.Context, filter UserFilter) (users []models.User, err error) {
	defer func(start time.Time) { r.observe("find", start, err) }(time.Now())
	return r.next.Find(ctx, filter)
}

func (r *instrumented) Update(ctx context.Context, sel UpdateSelector, fullName, username string) (n int64, err error) {
	defer func(start time.Time) { r.observe("update", start, err) }(time.Now())
	return r.next.Update(ctx, sel, fullName, username)
}

func (r *instrumented) Delete(ctx context.Context, sel DeleteSelector) (n int64, err error) {
	defer func(start time.Time) { r.observe("delete", start, err) }(time.Now())
	return r.next.Delete(ctx, sel)
}

func (r *instrumented) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *instrumented) Close() {
	r.next.Close()
}
