package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dapurlink/backoffice/internal/api"
)

const itemsPath = "/menu-items/"

// Service is the CRUD facade over /menu-items/.
type Service struct {
	api api.Caller
}

func NewService(c api.Caller) *Service {
	return &Service{api: c}
}

// SaveParams carries the full persisted record; the API replaces whole
// records on PUT.
type SaveParams struct {
	Name        string
	Description string
	Price       int64
	Stock       int64
	CategoryID  int64
	Active      bool

	// ImageFile switches the request to multipart when set.
	ImageFile string
}

func (p SaveParams) body() map[string]any {
	return map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"category_id": p.CategoryID,
		"is_active":   p.Active,
	}
}

func (p SaveParams) fields() map[string]string {
	return map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"price":       strconv.FormatInt(p.Price, 10),
		"stock":       strconv.FormatInt(p.Stock, 10),
		"category_id": strconv.FormatInt(p.CategoryID, 10),
		"is_active":   strconv.FormatBool(p.Active),
	}
}

// List fetches every product, inactive ones included; the back office needs
// to manage what customers cannot see.
func (s *Service) List(ctx context.Context) ([]Product, int, error) {
	raw, err := s.api.Get(ctx, itemsPath, map[string]string{"includeInactive": "true"})
	if err != nil {
		return nil, 0, err
	}

	return decodeProducts(raw)
}

func (s *Service) ByCategory(ctx context.Context, categoryID int64) ([]Product, int, error) {
	raw, err := s.api.Get(ctx, fmt.Sprintf("/menu-items/category/%d", categoryID), nil)
	if err != nil {
		return nil, 0, err
	}

	return decodeProducts(raw)
}

func (s *Service) Create(ctx context.Context, p SaveParams) (*Product, error) {
	var raw json.RawMessage
	var err error

	if p.ImageFile != "" {
		raw, err = s.api.PostForm(ctx, itemsPath, p.fields(), "image", p.ImageFile)
	} else {
		raw, err = s.api.Post(ctx, itemsPath, p.body())
	}

	if err != nil {
		return nil, err
	}

	return decodeProduct(raw)
}

func (s *Service) Update(ctx context.Context, id int64, p SaveParams) (*Product, error) {
	path := fmt.Sprintf("%s%d/", itemsPath, id)

	var raw json.RawMessage
	var err error

	if p.ImageFile != "" {
		raw, err = s.api.PutForm(ctx, path, p.fields(), "image", p.ImageFile)
	} else {
		raw, err = s.api.Put(ctx, path, p.body())
	}

	if err != nil {
		return nil, err
	}

	return decodeProduct(raw)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("%s%d/", itemsPath, id))
	return err
}

type wireProduct struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       flexInt       `json:"price"`
	Stock       *flexInt      `json:"stock"`
	CategoryID  flexInt       `json:"category_id"`
	IsActive    *bool         `json:"is_active"`
	ImagePath   string        `json:"image_path"`
	Variants    []wireVariant `json:"variants"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

type wireVariant struct {
	ID         int64   `json:"id"`
	MenuItemID flexInt `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      flexInt `json:"price"`
	IsActive   *bool   `json:"is_active"`
}

func transformProduct(w wireProduct) Product {
	active := true
	if w.IsActive != nil {
		active = *w.IsActive
	}

	var stock int64
	if w.Stock != nil {
		stock = int64(*w.Stock)
	}

	variants := make([]Variant, len(w.Variants))
	for i, v := range w.Variants {
		variants[i] = transformVariant(v)
	}

	if len(variants) == 0 {
		variants = nil
	}

	return Product{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Price:       int64(w.Price),
		Stock:       stock,
		CategoryID:  int64(w.CategoryID),
		Active:      active,
		ImagePath:   w.ImagePath,
		Variants:    variants,
		CreatedAt:   parseTime(w.CreatedAt),
		UpdatedAt:   parseTime(w.UpdatedAt),
	}
}

func transformVariant(w wireVariant) Variant {
	active := true
	if w.IsActive != nil {
		active = *w.IsActive
	}

	return Variant{
		ID:        w.ID,
		ProductID: int64(w.MenuItemID),
		Name:      w.Name,
		Price:     int64(w.Price),
		Active:    active,
	}
}

func decodeProducts(raw json.RawMessage) ([]Product, int, error) {
	items, total, err := api.ListPayload(raw)
	if err != nil {
		return nil, 0, err
	}

	var wires []wireProduct
	if err := json.Unmarshal(items, &wires); err != nil {
		return nil, 0, fmt.Errorf("decoding products: %w", err)
	}

	products := make([]Product, len(wires))
	for i, w := range wires {
		products[i] = transformProduct(w)
	}

	return products, total, nil
}

func decodeProduct(raw json.RawMessage) (*Product, error) {
	var w wireProduct
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decoding product: %w", err)
	}

	p := transformProduct(w)

	return &p, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return t
}
