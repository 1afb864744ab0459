package kvstore

import "context"

// noopStore is used when no durable storage facility is available, e.g. in
// non-interactive or server-rendering contexts. Reads report "nothing saved"
// and writes are silently skipped. Never errors.
type noopStore struct{}

func NewNoopStore() Store {
	return &noopStore{}
}

func (n *noopStore) Get(_ context.Context, _ string, _ any) (bool, error) { return false, nil }

func (n *noopStore) Set(_ context.Context, _ string, _ any) error { return nil }

func (n *noopStore) Delete(_ context.Context, _ string) error { return nil }

func (n *noopStore) Close() error { return nil }
