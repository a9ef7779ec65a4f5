package menu

import (
	"context"
	"errors"
	"sync"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/category"
)

// State is the lifecycle of a collection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

// Store owns the product collection. It also keeps its own category
// snapshot: products reference categories for display and form population,
// so both are fetched in parallel on load.
type Store struct {
	svc         *Service
	categorySvc *category.Service

	onUnauthorized func()

	mu         sync.Mutex
	state      State
	products   []Product
	total      int
	categories []category.Category
	err        string
}

func NewStore(svc *Service, categorySvc *category.Service, onUnauthorized func()) *Store {
	return &Store{svc: svc, categorySvc: categorySvc, onUnauthorized: onUnauthorized}
}

// Load fetches products and categories concurrently. A product fetch error
// wins over a category one when both fail.
func (st *Store) Load(ctx context.Context) error {
	st.mu.Lock()
	st.state = StateLoading
	st.mu.Unlock()

	var (
		wg         sync.WaitGroup
		products   []Product
		total      int
		categories []category.Category
		prodErr    error
		catErr     error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		products, total, prodErr = st.svc.List(ctx)
	}()

	go func() {
		defer wg.Done()
		categories, _, catErr = st.categorySvc.List(ctx)
	}()

	wg.Wait()

	err := prodErr
	if err == nil {
		err = catErr
	}

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
	st.products = products
	st.total = total
	st.categories = categories
	st.state = StateReady
	st.err = ""
	st.mu.Unlock()

	return nil
}

func (st *Store) Products() []Product {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Product, len(st.products))
	copy(out, st.products)

	return out
}

func (st *Store) Categories() []category.Category {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]category.Category, len(st.categories))
	copy(out, st.categories)

	return out
}

func (st *Store) State() (State, string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.state, st.err
}

func (st *Store) Stats() Stats {
	st.mu.Lock()
	defer st.mu.Unlock()

	return ComputeStats(st.products)
}

func (st *Store) Get(id int64) (Product, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, p := range st.products {
		if p.ID == id {
			return p, true
		}
	}

	return Product{}, false
}

// CategoryName resolves a category id for display.
func (st *Store) CategoryName(id int64) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, c := range st.categories {
		if c.ID == id {
			return c.Name
		}
	}

	return ""
}

// Apply patches the collection with the server's representation of a
// created or updated product.
func (st *Store) Apply(p Product) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, existing := range st.products {
		if existing.ID == p.ID {
			// Variant sub-collections are owned by the variant store; keep
			// what we already know when the server omits them.
			if p.Variants == nil {
				p.Variants = existing.Variants
			}

			st.products[i] = p

			return
		}
	}

	st.products = append(st.products, p)
	st.total++
}

func (st *Store) Delete(ctx context.Context, id int64) error {
	if err := st.svc.Delete(ctx, id); err != nil {
		st.unauthorized(err)
		return err
	}

	st.mu.Lock()
	for i, p := range st.products {
		if p.ID == id {
			st.products = append(st.products[:i], st.products[i+1:]...)
			st.total--

			break
		}
	}
	st.mu.Unlock()

	return nil
}

// Toggle resends the full cached record with only the active flag flipped;
// the API has no partial patch.
func (st *Store) Toggle(ctx context.Context, id int64) error {
	current, ok := st.Get(id)
	if !ok {
		return errors.New("product not in collection")
	}

	params := SaveParams{
		Name:        current.Name,
		Description: current.Description,
		Price:       current.Price,
		Stock:       current.Stock,
		CategoryID:  current.CategoryID,
		Active:      !current.Active,
	}

	updated, err := st.svc.Update(ctx, id, params)
	if err != nil {
		st.unauthorized(err)
		return err
	}

	st.Apply(*updated)

	return nil
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
