package store

import (
	"context"

	"github.com/ykvlv/lesson-reminder/internal/domain"
)

// Journal is an append-only record of send outcomes.
// It is never read back to rebuild schedules.
type Journal interface {
	Record(ctx context.Context, d domain.Delivery) error
	List(ctx context.Context, limit int) ([]domain.Delivery, error)
	Close() error
}
