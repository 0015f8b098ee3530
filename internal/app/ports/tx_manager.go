package ports

import "context"

// TxManager runs fn inside a transaction carried by the context handed to
// fn. Repositories called with that context join the transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
