package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically.
// Repositories called with the ctx handed to fn take part in the transaction.
// If fn returns an error the transaction is rolled back and the error returned unchanged.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
