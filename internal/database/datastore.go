package database

import "context"

// DataStore is every repository the services need plus transactions.
// Consumers that only read or write one entity can depend on the smaller
// interfaces instead.
type DataStore interface {
	ProjectRepository
	UserRepository
	TeamRepository
	StatusRepository
	TaskRepository
	NotificationRepository

	// WithTx runs fn against a DataStore bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling WithTx on a store that is already transactional reuses it.
	WithTx(ctx context.Context, fn func(tx DataStore) error) error
}
