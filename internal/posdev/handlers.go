package posdev

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 5 << 20

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login accepts any non-empty credential pair; this is a dev fixture, not
// an account system. The token it signs is still a real JWT so the auth
// middleware exercises the same code path as production.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issueToken(req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"token":  token,
		"user":   map[string]any{"id": 1, "name": "Dev Admin", "email": req.Email, "role": "admin"},
		"tenant": map[string]any{"id": 1, "name": "Warung Posdev"},
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.store.Categories()
	writeList(w, categories, len(categories))
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	c, err := decodeCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeData(w, http.StatusCreated, s.store.CreateCategory(c))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := decodeCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.ReplaceCategory(id, c)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.DeleteCategory(id); errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	writeData(w, http.StatusOK, nil)
}

func (s *Server) listMenuItems(w http.ResponseWriter, r *http.Request) {
	items := s.store.MenuItems(0)

	if r.URL.Query().Get("includeInactive") != "true" {
		visible := items[:0]
		for _, item := range items {
			if item.IsActive {
				visible = append(visible, item)
			}
		}
		items = visible
	}

	writeList(w, items, len(items))
}

func (s *Server) listMenuItemsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	items := s.store.MenuItems(id)
	if items == nil {
		items = []MenuItem{}
	}

	writeList(w, items, len(items))
}

func (s *Server) createMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := decodeMenuItem(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeData(w, http.StatusCreated, s.store.CreateMenuItem(item))
}

func (s *Server) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := decodeMenuItem(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.ReplaceMenuItem(id, item)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (s *Server) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.DeleteMenuItem(id); errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	writeData(w, http.StatusOK, nil)
}

func (s *Server) listVariants(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	variants := s.store.VariantsOf(id)
	if variants == nil {
		variants = []Variant{}
	}

	writeList(w, variants, len(variants))
}

type variantRequest struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	IsActive   bool   `json:"is_active"`
}

func (s *Server) createVariant(w http.ResponseWriter, r *http.Request) {
	var req variantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateVariant(Variant{
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Price:      req.Price,
		IsActive:   req.IsActive,
	})
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusBadRequest, "parent menu item does not exist")
		return
	}

	writeData(w, http.StatusCreated, created)
}

func (s *Server) updateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req variantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.ReplaceVariant(id, Variant{
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Price:      req.Price,
		IsActive:   req.IsActive,
	})
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "variant not found")
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (s *Server) deleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.DeleteVariant(id); errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "variant not found")
		return
	}

	writeData(w, http.StatusOK, nil)
}

func (s *Server) paymentReport(w http.ResponseWriter, r *http.Request) {
	sessions := s.store.Sessions()
	writeList(w, sessions, len(sessions))
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func isMultipart(r *http.Request) bool {
	mediatype, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediatype, "multipart/")
}

// decodeCategory reads either a JSON body or a multipart form with an
// optional image part. Uploaded images are not stored; the record just
// gets a fake path, which is all the client needs.
func decodeCategory(r *http.Request) (Category, error) {
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return Category{}, fmt.Errorf("parsing multipart form: %w", err)
		}

		c := Category{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			IsDisplayed: r.FormValue("is_displayed") == "true",
			SelfOrder:   r.FormValue("self_order") == "true",
		}

		if _, header, err := r.FormFile("image"); err == nil {
			c.ImageURL = "/uploads/" + header.Filename
		}

		return c, nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsDisplayed bool   `json:"is_displayed"`
		SelfOrder   bool   `json:"self_order"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Category{}, err
	}

	return Category{
		Name:        req.Name,
		Description: req.Description,
		IsDisplayed: req.IsDisplayed,
		SelfOrder:   req.SelfOrder,
	}, nil
}

func decodeMenuItem(r *http.Request) (MenuItem, error) {
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return MenuItem{}, fmt.Errorf("parsing multipart form: %w", err)
		}

		price, _ := strconv.ParseInt(r.FormValue("price"), 10, 64)
		stock, _ := strconv.ParseInt(r.FormValue("stock"), 10, 64)
		categoryID, _ := strconv.ParseInt(r.FormValue("category_id"), 10, 64)

		item := MenuItem{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			Price:       price,
			Stock:       stock,
			CategoryID:  categoryID,
			IsActive:    r.FormValue("is_active") == "true",
		}

		if _, header, err := r.FormFile("image"); err == nil {
			item.ImagePath = "/uploads/" + header.Filename
		}

		return item, nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
		Stock       int64  `json:"stock"`
		CategoryID  int64  `json:"category_id"`
		IsActive    bool   `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return MenuItem{}, err
	}

	return MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		IsActive:    req.IsActive,
	}, nil
}
