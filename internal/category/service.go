package category

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dapurlink/backoffice/internal/api"
)

const basePath = "/menu-categories/"

// Service translates between the wire schema of /menu-categories/ and the
// normalized Category shape. All methods hand back domain values, never raw
// wire records.
type Service struct {
	api api.Caller
}

func NewService(c api.Caller) *Service {
	return &Service{api: c}
}

// SaveParams carries every persisted field. The API overwrites whole
// records on PUT, so updates must resend all of them.
type SaveParams struct {
	Name             string
	Description      string
	Active           bool
	SelfOrderVisible bool

	// ImageFile is a local file staged for upload. When set, the request
	// goes multipart; otherwise plain JSON.
	ImageFile string
}

func (p SaveParams) body() map[string]any {
	return map[string]any{
		"name":         p.Name,
		"description":  p.Description,
		"is_displayed": p.Active,
		"self_order":   p.SelfOrderVisible,
	}
}

func (p SaveParams) fields() map[string]string {
	return map[string]string{
		"name":         p.Name,
		"description":  p.Description,
		"is_displayed": strconv.FormatBool(p.Active),
		"self_order":   strconv.FormatBool(p.SelfOrderVisible),
	}
}

func (s *Service) List(ctx context.Context) ([]Category, int, error) {
	raw, err := s.api.Get(ctx, basePath, nil)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := api.ListPayload(raw)
	if err != nil {
		return nil, 0, err
	}

	var wires []wireCategory
	if err := json.Unmarshal(items, &wires); err != nil {
		return nil, 0, fmt.Errorf("decoding categories: %w", err)
	}

	categories := make([]Category, len(wires))
	for i, w := range wires {
		categories[i] = transform(w)
	}

	return categories, total, nil
}

func (s *Service) Create(ctx context.Context, p SaveParams) (*Category, error) {
	var raw json.RawMessage
	var err error

	if p.ImageFile != "" {
		raw, err = s.api.PostForm(ctx, basePath, p.fields(), "image", p.ImageFile)
	} else {
		raw, err = s.api.Post(ctx, basePath, p.body())
	}

	if err != nil {
		return nil, err
	}

	return decodeOne(raw)
}

func (s *Service) Update(ctx context.Context, id int64, p SaveParams) (*Category, error) {
	path := fmt.Sprintf("%s%d/", basePath, id)

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

	return decodeOne(raw)
}

// Delete is unconditional; confirming with the user happens in the view
// before this is ever called.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("%s%d/", basePath, id))
	return err
}

type wireCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	IsDisplayed *bool  `json:"is_displayed"`
	SelfOrder   *bool  `json:"self_order"`
	ImageURL    string `json:"image_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// transform maps one wire record to the domain shape. Total by design:
// every wire field maps or is dropped, optional fields get explicit
// defaults.
func transform(w wireCategory) Category {
	kind, known := ParseType(w.Type)
	if !known {
		kind = InferType(w.Description)
	}

	active := true
	if w.IsDisplayed != nil {
		active = *w.IsDisplayed
	}

	selfOrder := false
	if w.SelfOrder != nil {
		selfOrder = *w.SelfOrder
	}

	return Category{
		ID:               w.ID,
		Name:             w.Name,
		Description:      w.Description,
		Type:             kind,
		Active:           active,
		SelfOrderVisible: selfOrder,
		ImageURL:         w.ImageURL,
		CreatedAt:        parseTime(w.CreatedAt),
		UpdatedAt:        parseTime(w.UpdatedAt),
	}
}

func decodeOne(raw json.RawMessage) (*Category, error) {
	var w wireCategory
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decoding category: %w", err)
	}

	c := transform(w)

	return &c, nil
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
