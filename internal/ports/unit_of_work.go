package ports

import "context"

// Tx is an opaque transaction handle for repositories. Infrastructure owns
// the concrete type (here, *gorm.DB).
type Tx interface{}

// UnitOfWork is the transaction boundary around one assessment transition:
// the assessment write, the ledger append, and the product-status sync all
// run inside a single callback. Returning an error rolls back, nil commits.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

func WithTxContext(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func TxFromContext(ctx context.Context) Tx {
	return ctx.Value(txKey{})
}
