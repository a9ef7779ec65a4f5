package category

import (
	"context"
	"errors"
	"sync"

	"github.com/dapurlink/backoffice/internal/api"
)

// State is the lifecycle of a resource collection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

// Store owns the in-memory category collection. Mutations patch the
// collection in place from the server's returned representation instead of
// forcing a refetch. tea commands run on goroutines, so access is guarded.
type Store struct {
	svc            *Service
	onUnauthorized func()

	mu    sync.Mutex
	state State
	items []Category
	total int
	err   string
}

// NewStore builds a store. onUnauthorized runs whenever any operation hits
// a 401; the session is unrecoverable at this layer, so the app logs out
// instead of showing a page error.
func NewStore(svc *Service, onUnauthorized func()) *Store {
	return &Store{svc: svc, onUnauthorized: onUnauthorized}
}

func (st *Store) Load(ctx context.Context) error {
	st.mu.Lock()
	st.state = StateLoading
	st.mu.Unlock()

	items, total, err := st.svc.List(ctx)
	if err != nil {
		if st.unauthorized(err) {
			st.mu.Lock()
			st.state = StateIdle
			st.mu.Unlock()

			return err
		}

		st.mu.Lock()
		st.state = StateError
		st.err = err.Error()
		st.mu.Unlock()

		return err
	}

	st.mu.Lock()
	st.items = items
	st.total = total
	st.state = StateReady
	st.err = ""
	st.mu.Unlock()

	return nil
}

// Items returns a snapshot copy of the collection.
func (st *Store) Items() []Category {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Category, len(st.items))
	copy(out, st.items)

	return out
}

func (st *Store) Total() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.total
}

func (st *Store) State() (State, string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.state, st.err
}

// Get looks up a cached category by id.
func (st *Store) Get(id int64) (Category, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, c := range st.items {
		if c.ID == id {
			return c, true
		}
	}

	return Category{}, false
}

func (st *Store) Create(ctx context.Context, p SaveParams) error {
	created, err := st.svc.Create(ctx, p)
	if err != nil {
		return st.fail(err)
	}

	st.mu.Lock()
	st.items = append(st.items, *created)
	st.total++
	st.mu.Unlock()

	return nil
}

func (st *Store) Update(ctx context.Context, id int64, p SaveParams) error {
	updated, err := st.svc.Update(ctx, id, p)
	if err != nil {
		return st.fail(err)
	}

	st.patch(*updated)

	return nil
}

func (st *Store) Delete(ctx context.Context, id int64) error {
	if err := st.svc.Delete(ctx, id); err != nil {
		return st.fail(err)
	}

	st.mu.Lock()
	for i, c := range st.items {
		if c.ID == id {
			st.items = append(st.items[:i], st.items[i+1:]...)
			st.total--

			break
		}
	}
	st.mu.Unlock()

	return nil
}

// Toggle flips the active flag. The API only does whole-record PUT, so the
// full cached record is resent with just the flag changed.
func (st *Store) Toggle(ctx context.Context, id int64) error {
	current, ok := st.Get(id)
	if !ok {
		return errors.New("category not in collection")
	}

	params := SaveParams{
		Name:             current.Name,
		Description:      current.Description,
		Active:           !current.Active,
		SelfOrderVisible: current.SelfOrderVisible,
	}

	return st.Update(ctx, id, params)
}

func (st *Store) patch(updated Category) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, c := range st.items {
		if c.ID == updated.ID {
			st.items[i] = updated
			return
		}
	}

	st.items = append(st.items, updated)
}

// fail handles a mutation error. The collection stays untouched; the view
// decides how to present the failure. 401 forces a logout instead.
func (st *Store) fail(err error) error {
	st.unauthorized(err)
	return err
}

func (st *Store) unauthorized(err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}

	if st.onUnauthorized != nil {
		st.onUnauthorized()
	}

	return true
}
