package block

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Find returns the entry for the subject, or nil when none exists.
	Find(ctx context.Context, key SubjectKey) (*Entry, error)
	// Upsert atomically creates or refreshes the entry for its subject key
	// and reports whether a new row was created. Concurrent calls for the
	// same key must never produce two rows.
	Upsert(ctx context.Context, entry *Entry) (created bool, err error)
	// DeleteIfExists removes the entry for the subject and reports whether
	// one existed. Missing entries are not an error.
	DeleteIfExists(ctx context.Context, key SubjectKey) (removed bool, err error)
	ListActive(ctx context.Context, now time.Time) ([]Entry, error)
}
