package kvstore

import (
	"context"
)

// Store is the client-side key-value persistence used for the cart and
// session slots. Implementations must treat a missing key as (false, nil),
// not as an error.
type Store interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}
