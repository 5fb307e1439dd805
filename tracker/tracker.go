package tracker

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"tasktimer/errs"
	"tasktimer/logfields"
	"tasktimer/storage"
)

// Tracker runs operations as load-mutate-save transactions against the
// current and archive stores. A list is only saved when the operation
// succeeded, so a failed operation never reaches disk.
type Tracker struct {
	stores map[storage.TaskType]storage.Store
	clock  clockwork.Clock
	logger *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used for all timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a Tracker over the two stores.
func New(current, archive storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		stores: map[storage.TaskType]storage.Store{
			storage.TaskTypeCurrent: current,
			storage.TaskTypeArchive: archive,
		},
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Clock returns the tracker clock.
func (t *Tracker) Clock() clockwork.Clock {
	return t.clock
}

// Store returns the store for a task type.
func (t *Tracker) Store(tt storage.TaskType) (storage.Store, error) {
	s, ok := t.stores[tt]
	if !ok || s == nil {
		return nil, errs.New(errs.KindInvalidInput, "unknown task type %q", tt)
	}
	return s, nil
}

// Update loads the list of tt, runs fn and saves the list if fn succeeded.
func (t *Tracker) Update(ctx context.Context, tt storage.TaskType, fn func(*Engine) error) error {
	return t.transact(ctx, tt, true, fn)
}

// View loads the list of tt and runs fn without saving.
func (t *Tracker) View(ctx context.Context, tt storage.TaskType, fn func(*Engine) error) error {
	return t.transact(ctx, tt, false, fn)
}

func (t *Tracker) transact(ctx context.Context, tt storage.TaskType, save bool, fn func(*Engine) error) error {
	store, err := t.Store(tt)
	if err != nil {
		return err
	}

	unlock, err := store.Lock(ctx)
	if err != nil {
		return persistenceError(err, "lock", store)
	}
	defer t.release(store, unlock)

	list, err := store.Load(ctx)
	if err != nil {
		return persistenceError(err, "load", store)
	}

	if err := fn(NewEngine(list, t.clock)); err != nil {
		t.logger.Debug("Operation failed, store left unchanged",
			logfields.TaskType(string(tt)), logfields.Error(err))
		return err
	}
	if !save {
		return nil
	}

	if err := store.Save(ctx, list); err != nil {
		return persistenceError(err, "save", store)
	}
	return nil
}

// Clear removes every task of tt. Confirmation is up to the caller.
func (t *Tracker) Clear(ctx context.Context, tt storage.TaskType) (int, error) {
	var removed int
	err := t.Update(ctx, tt, func(e *Engine) error {
		removed = e.Clear()
		return nil
	})
	if err == nil {
		t.logger.Info("Cleared tasks", logfields.TaskType(string(tt)), logfields.TaskCount(removed))
	}
	return removed, err
}

// ArchiveTask moves a current task into the archive and returns its
// archive id. The archive is written before the current list, so an
// interrupted run can duplicate a task but never lose one.
func (t *Tracker) ArchiveTask(ctx context.Context, id int) (int, error) {
	current, err := t.Store(storage.TaskTypeCurrent)
	if err != nil {
		return 0, err
	}
	archive, err := t.Store(storage.TaskTypeArchive)
	if err != nil {
		return 0, err
	}

	// Always current then archive, so two archivers cannot deadlock.
	unlockCurrent, err := current.Lock(ctx)
	if err != nil {
		return 0, persistenceError(err, "lock", current)
	}
	defer t.release(current, unlockCurrent)
	unlockArchive, err := archive.Lock(ctx)
	if err != nil {
		return 0, persistenceError(err, "lock", archive)
	}
	defer t.release(archive, unlockArchive)

	src, err := current.Load(ctx)
	if err != nil {
		return 0, persistenceError(err, "load", current)
	}
	dst, err := archive.Load(ctx)
	if err != nil {
		return 0, persistenceError(err, "load", archive)
	}

	newID, err := Archive(src, dst, id, t.clock.Now())
	if err != nil {
		return 0, err
	}

	if err := archive.Save(ctx, dst); err != nil {
		return 0, persistenceError(err, "save", archive)
	}
	if err := current.Save(ctx, src); err != nil {
		return 0, persistenceError(err, "save", current)
	}

	t.logger.Info("Archived task", logfields.TaskID(id), slog.Int("archive_id", newID))
	return newID, nil
}

func (t *Tracker) release(store storage.Store, unlock func() error) {
	if err := unlock(); err != nil {
		t.logger.Warn("Failed to release store lock",
			logfields.Path(store.Location()), logfields.Error(err))
	}
}

// persistenceError classifies err as a persistence failure unless a
// store already did.
func persistenceError(err error, op string, store storage.Store) error {
	if errs.KindOf(err) == errs.KindPersistenceFailure {
		return err
	}
	return errs.Persistence(err, op, store.Location())
}
