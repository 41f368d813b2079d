package incident

import (
	"context"
	"time"
)

// Filter narrows incident queries; zero fields match everything.
type Filter struct {
	Principal string
	Kind      string
	Limit     int
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Append(ctx context.Context, record *Record) error
	// List returns records matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]Record, error)
	// DeleteOlderThan exists for the external retention job; this service
	// never calls it on its own.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
