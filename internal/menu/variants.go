package menu

import (
	"context"
	"errors"
	"sync"

	"github.com/dapurlink/backoffice/internal/api"
)

// VariantStore owns the variant list for the product currently being
// edited. It is keyed strictly by parent product id: switching products
// clears the list immediately and bumps a generation counter so a fetch
// that resolves late for the previous product is discarded instead of
// overwriting the new one's state.
type VariantStore struct {
	svc            *VariantService
	onUnauthorized func()

	mu        sync.Mutex
	productID int64
	gen       uint64
	state     State
	items     []Variant
	err       string
}

func NewVariantStore(svc *VariantService, onUnauthorized func()) *VariantStore {
	return &VariantStore{svc: svc, onUnauthorized: onUnauthorized}
}

// SetProduct switches the store to a new parent. The stale list is dropped
// right away, not left visible while the fetch is in flight.
func (vs *VariantStore) SetProduct(id int64) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if vs.productID == id {
		return
	}

	vs.productID = id
	vs.gen++
	vs.items = nil
	vs.err = ""
	vs.state = StateIdle
}

// Fetch loads variants for the current parent. The product id and
// generation are captured before the call; if the parent changed while the
// request was in flight the result is thrown away.
func (vs *VariantStore) Fetch(ctx context.Context) error {
	vs.mu.Lock()
	id := vs.productID
	gen := vs.gen
	vs.state = StateLoading
	vs.mu.Unlock()

	if id == 0 {
		vs.mu.Lock()
		vs.state = StateIdle
		vs.mu.Unlock()

		return nil
	}

	items, err := vs.svc.ByProduct(ctx, id)

	vs.mu.Lock()
	defer vs.mu.Unlock()

	if vs.gen != gen {
		// Stale response for a previous product.
		return nil
	}

	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			vs.state = StateIdle

			if vs.onUnauthorized != nil {
				vs.onUnauthorized()
			}

			return err
		}

		vs.state = StateError
		vs.err = err.Error()

		return err
	}

	vs.items = items
	vs.state = StateReady
	vs.err = ""

	return nil
}

func (vs *VariantStore) Items() []Variant {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	out := make([]Variant, len(vs.items))
	copy(out, vs.items)

	return out
}

func (vs *VariantStore) State() (State, string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	return vs.state, vs.err
}

func (vs *VariantStore) ProductID() int64 {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	return vs.productID
}

func (vs *VariantStore) Create(ctx context.Context, p VariantParams) error {
	created, err := vs.svc.Create(ctx, p)
	if err != nil {
		vs.fail(err)
		return err
	}

	vs.mu.Lock()
	if vs.productID == created.ProductID {
		vs.items = append(vs.items, *created)
	}
	vs.mu.Unlock()

	return nil
}

func (vs *VariantStore) Update(ctx context.Context, id int64, p VariantParams) error {
	updated, err := vs.svc.Update(ctx, id, p)
	if err != nil {
		vs.fail(err)
		return err
	}

	vs.mu.Lock()
	for i, v := range vs.items {
		if v.ID == id {
			vs.items[i] = *updated
			break
		}
	}
	vs.mu.Unlock()

	return nil
}

func (vs *VariantStore) Delete(ctx context.Context, id int64) error {
	if err := vs.svc.Delete(ctx, id); err != nil {
		vs.fail(err)
		return err
	}

	vs.mu.Lock()
	for i, v := range vs.items {
		if v.ID == id {
			vs.items = append(vs.items[:i], vs.items[i+1:]...)
			break
		}
	}
	vs.mu.Unlock()

	return nil
}

// Toggle resends the whole variant with the flag flipped.
func (vs *VariantStore) Toggle(ctx context.Context, id int64) error {
	vs.mu.Lock()
	var current *Variant
	for i := range vs.items {
		if vs.items[i].ID == id {
			current = &vs.items[i]
			break
		}
	}
	vs.mu.Unlock()

	if current == nil {
		return errors.New("variant not in collection")
	}

	return vs.Update(ctx, id, VariantParams{
		ProductID: current.ProductID,
		Name:      current.Name,
		Price:     current.Price,
		Active:    !current.Active,
	})
}

func (vs *VariantStore) fail(err error) {
	if errors.Is(err, api.ErrUnauthorized) && vs.onUnauthorized != nil {
		vs.onUnauthorized()
	}
}
