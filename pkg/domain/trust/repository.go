package trust

import "context"

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Find returns the entry for the pair, or nil when none exists.
	Find(ctx context.Context, principal, address string) (*Entry, error)
	ListByPrincipal(ctx context.Context, principal string) ([]Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entry *Entry) error
	// Delete removes the entry for the pair and reports whether one existed.
	Delete(ctx context.Context, principal, address string) (removed bool, err error)
}
