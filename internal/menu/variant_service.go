package menu

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dapurlink/backoffice/internal/api"
)

const variantsPath = "/menu-item-variants"

// VariantService is the CRUD facade over /menu-item-variants, always scoped
// by the parent product.
type VariantService struct {
	api api.Caller
}

func NewVariantService(c api.Caller) *VariantService {
	return &VariantService{api: c}
}

// VariantParams is the full variant record for create and update.
type VariantParams struct {
	ProductID int64
	Name      string
	Price     int64
	Active    bool
}

func (p VariantParams) body() map[string]any {
	return map[string]any{
		"menu_item_id": p.ProductID,
		"name":         p.Name,
		"price":        p.Price,
		"is_active":    p.Active,
	}
}

func (s *VariantService) ByProduct(ctx context.Context, productID int64) ([]Variant, error) {
	raw, err := s.api.Get(ctx, fmt.Sprintf("%s/menu-item/%d", variantsPath, productID), nil)
	if err != nil {
		return nil, err
	}

	items, _, err := api.ListPayload(raw)
	if err != nil {
		return nil, err
	}

	var wires []wireVariant
	if err := json.Unmarshal(items, &wires); err != nil {
		return nil, fmt.Errorf("decoding variants: %w", err)
	}

	variants := make([]Variant, len(wires))
	for i, w := range wires {
		variants[i] = transformVariant(w)
	}

	return variants, nil
}

func (s *VariantService) Create(ctx context.Context, p VariantParams) (*Variant, error) {
	if p.ProductID == 0 {
		return nil, fmt.Errorf("variant requires a persisted parent product")
	}

	raw, err := s.api.Post(ctx, variantsPath, p.body())
	if err != nil {
		return nil, err
	}

	return decodeVariant(raw)
}

func (s *VariantService) Update(ctx context.Context, id int64, p VariantParams) (*Variant, error) {
	raw, err := s.api.Put(ctx, fmt.Sprintf("%s/%d", variantsPath, id), p.body())
	if err != nil {
		return nil, err
	}

	return decodeVariant(raw)
}

func (s *VariantService) Delete(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("%s/%d", variantsPath, id))
	return err
}

func decodeVariant(raw json.RawMessage) (*Variant, error) {
	var w wireVariant
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decoding variant: %w", err)
	}

	v := transformVariant(w)

	return &v, nil
}
