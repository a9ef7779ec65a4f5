package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/dapurlink/backoffice/internal/api"
)

// State is the lifecycle of the transaction collection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

// Store owns the flattened transaction list. The report is read-only, so
// there are no mutations, only Load, which the view calls periodically.
type Store struct {
	svc            *Service
	onUnauthorized func()

	mu    sync.Mutex
	state State
	items []Transaction
	err   string
}

func NewStore(svc *Service, onUnauthorized func()) *Store {
	return &Store{svc: svc, onUnauthorized: onUnauthorized}
}

func (st *Store) Load(ctx context.Context) error {
	st.mu.Lock()
	st.state = StateLoading
	st.mu.Unlock()

	items, err := st.svc.Report(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			st.mu.Lock()
			st.state = StateIdle
			st.mu.Unlock()

			if st.onUnauthorized != nil {
				st.onUnauthorized()
			}

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
	st.state = StateReady
	st.err = ""
	st.mu.Unlock()

	return nil
}

// Items returns a snapshot copy of the collection.
func (st *Store) Items() []Transaction {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Transaction, len(st.items))
	copy(out, st.items)

	return out
}

func (st *Store) State() (State, string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.state, st.err
}
