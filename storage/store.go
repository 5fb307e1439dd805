package storage

import "context"

// Store is the durable location of one TaskList.
// This allows swapping between the file backend and an in-memory fake.
type Store interface {
	// Load reads the whole list. A missing or empty location yields an
	// empty list with NextID 1.
	Load(ctx context.Context) (*TaskList, error)
	// Save fully overwrites the location with list.
	Save(ctx context.Context, list *TaskList) error
	// Lock acquires exclusive access for a load-mutate-save cycle and
	// returns the function releasing it.
	Lock(ctx context.Context) (unlock func() error, err error)
	// Location describes where the list lives, for messages and logs.
	Location() string
}
