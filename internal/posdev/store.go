// Package posdev is a self-contained stand-in for the POS API: the same
// routes, envelope and whole-record PUT semantics, backed by in-memory
// fixtures. It exists so the TUI can be developed and demoed without a
// live POS tenant.
package posdev

import (
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("record not found")

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	IsDisplayed bool      `json:"is_displayed"`
	SelfOrder   bool      `json:"self_order"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	CategoryID  int64     `json:"category_id"`
	IsActive    bool      `json:"is_active"`
	ImagePath   string    `json:"image_path"`
	Variants    []Variant `json:"variants,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Variant struct {
	ID         int64  `json:"id"`
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	IsActive   bool   `json:"is_active"`
}

type Session struct {
	ID       int64     `json:"id"`
	OpenedAt time.Time `json:"opened_at"`
	Payments []Payment `json:"payments"`
}

type Payment struct {
	ID           int64       `json:"id"`
	OrderID      int64       `json:"order_id"`
	TableNumber  string      `json:"table_number"`
	CustomerName string      `json:"customer_name"`
	Amount       int64       `json:"amount"`
	Mode         string      `json:"payment_mode"`
	PaidAt       time.Time   `json:"paid_at"`
	Items        []OrderItem `json:"order_items"`
}

type OrderItem struct {
	ID           int64  `json:"id"`
	MenuItemID   int64  `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	VariantID    int64  `json:"variant_id,omitempty"`
	VariantName  string `json:"variant_name,omitempty"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	Subtotal     int64  `json:"subtotal"`
	Notes        string `json:"notes,omitempty"`
}

// Store holds all fixtures. One mutex over everything; this is a dev
// server, not a database.
type Store struct {
	mu sync.Mutex

	nextID     int64
	categories []Category
	items      []MenuItem
	variants   []Variant
	sessions   []Session
}

func NewStore() *Store {
	s := &Store{nextID: 100}
	s.seed()

	return s
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)

	return out
}

func (s *Store) CreateCategory(c Category) Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.id()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	s.categories = append(s.categories, c)

	return c
}

// ReplaceCategory overwrites the whole record, like the real POS does.
// Fields the caller leaves out come back zeroed, not preserved.
func (s *Store) ReplaceCategory(id int64, c Category) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.categories {
		if existing.ID == id {
			c.ID = id
			c.CreatedAt = existing.CreatedAt
			c.UpdatedAt = time.Now().UTC()
			s.categories[i] = c

			return c, nil
		}
	}

	return Category{}, ErrNotFound
}

func (s *Store) DeleteCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (s *Store) MenuItems(categoryID int64) []MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []MenuItem
	for _, item := range s.items {
		if categoryID != 0 && item.CategoryID != categoryID {
			continue
		}

		item.Variants = s.variantsOf(item.ID)
		out = append(out, item)
	}

	return out
}

func (s *Store) CreateMenuItem(item MenuItem) MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.id()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	item.Variants = nil
	s.items = append(s.items, item)

	return item
}

func (s *Store) ReplaceMenuItem(id int64, item MenuItem) (MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			item.ID = id
			item.CreatedAt = existing.CreatedAt
			item.UpdatedAt = time.Now().UTC()
			item.Variants = nil
			s.items[i] = item

			item.Variants = s.variantsOf(id)

			return item, nil
		}
	}

	return MenuItem{}, ErrNotFound
}

func (s *Store) DeleteMenuItem(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)

			kept := s.variants[:0]
			for _, v := range s.variants {
				if v.MenuItemID != id {
					kept = append(kept, v)
				}
			}
			s.variants = kept

			return nil
		}
	}

	return ErrNotFound
}

func (s *Store) VariantsOf(menuItemID int64) []Variant {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.variantsOf(menuItemID)
}

func (s *Store) variantsOf(menuItemID int64) []Variant {
	var out []Variant
	for _, v := range s.variants {
		if v.MenuItemID == menuItemID {
			out = append(out, v)
		}
	}

	return out
}

func (s *Store) CreateVariant(v Variant) (Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := false
	for _, item := range s.items {
		if item.ID == v.MenuItemID {
			parent = true
			break
		}
	}

	if !parent {
		return Variant{}, ErrNotFound
	}

	v.ID = s.id()
	s.variants = append(s.variants, v)

	return v, nil
}

func (s *Store) ReplaceVariant(id int64, v Variant) (Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.variants {
		if existing.ID == id {
			v.ID = id
			if v.MenuItemID == 0 {
				v.MenuItemID = existing.MenuItemID
			}
			s.variants[i] = v

			return v, nil
		}
	}

	return Variant{}, ErrNotFound
}

func (s *Store) DeleteVariant(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.variants {
		if v.ID == id {
			s.variants = append(s.variants[:i], s.variants[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Session, len(s.sessions))
	copy(out, s.sessions)

	return out
}

func (s *Store) seed() {
	now := time.Now().UTC()

	s.categories = []Category{
		{ID: 1, Name: "Drinks", Description: "Coffee, tea and juice", Type: "drink",
			IsDisplayed: true, SelfOrder: true, CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Mains", Description: "Rice and noodle dishes", Type: "food",
			IsDisplayed: true, SelfOrder: true, CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Seasonal", Description: "Rotating specials", Type: "other",
			IsDisplayed: false, SelfOrder: false, CreatedAt: now, UpdatedAt: now},
	}

	s.items = []MenuItem{
		{ID: 10, Name: "Es Kopi Susu", Description: "Iced coffee with palm sugar",
			Price: 18000, Stock: 40, CategoryID: 1, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: 11, Name: "Nasi Goreng", Description: "Fried rice with chicken",
			Price: 25000, Stock: 25, CategoryID: 2, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: 12, Name: "Mie Ayam", Description: "Chicken noodles",
			Price: 22000, Stock: 0, CategoryID: 2, IsActive: false, CreatedAt: now, UpdatedAt: now},
	}

	s.variants = []Variant{
		{ID: 20, MenuItemID: 10, Name: "Regular", Price: 18000, IsActive: true},
		{ID: 21, MenuItemID: 10, Name: "Large", Price: 22000, IsActive: true},
	}

	opened := now.Add(-6 * time.Hour)
	s.sessions = []Session{
		{ID: 1, OpenedAt: opened, Payments: []Payment{
			{ID: 31, OrderID: 41, TableNumber: "A2", CustomerName: "Budi",
				Amount: 40000, Mode: "qris", PaidAt: opened.Add(time.Hour),
				Items: []OrderItem{
					{ID: 51, MenuItemID: 10, MenuItemName: "Es Kopi Susu", VariantID: 21,
						VariantName: "Large", Quantity: 1, UnitPrice: 22000, Subtotal: 22000},
					{ID: 52, MenuItemID: 10, MenuItemName: "Es Kopi Susu", VariantID: 20,
						VariantName: "Regular", Quantity: 1, UnitPrice: 18000, Subtotal: 18000},
				}},
			{ID: 32, OrderID: 42, TableNumber: "B1", CustomerName: "Sari",
				Amount: 25000, Mode: "cash", PaidAt: opened.Add(2 * time.Hour),
				Items: []OrderItem{
					{ID: 53, MenuItemID: 11, MenuItemName: "Nasi Goreng", Quantity: 1,
						UnitPrice: 25000, Subtotal: 25000, Notes: "extra chili"},
				}},
		}},
	}
}
