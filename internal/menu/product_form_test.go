package menu_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/category"
	"github.com/dapurlink/backoffice/internal/menu"
)

func testCategories() []category.Category {
	return []category.Category{
		{ID: 4, Name: "Archived", Active: false},
		{ID: 5, Name: "Drinks", Active: true},
		{ID: 6, Name: "Mains", Active: true},
	}
}

func TestProductForm_OpenNewDefaultCategory(t *testing.T) {
	f := menu.NewProductForm(t.TempDir())

	f.OpenNew(testCategories())
	assert.Equal(t, int64(5), f.CategoryID, "first active category wins")
	assert.Equal(t, menu.ModeCreate, f.Mode())
	assert.True(t, f.Active)
	assert.False(t, f.CanManageVariants())

	// No active category at all: fall back to the first one.
	f.Close()
	f.OpenNew([]category.Category{{ID: 9, Active: false}})
	assert.Equal(t, int64(9), f.CategoryID)
}

func TestProductForm_NumericCoercion(t *testing.T) {
	f := menu.NewProductForm(t.TempDir())
	f.OpenNew(testCategories())

	f.Set("price", "")
	assert.Nil(t, f.Price)

	f.Set("price", "1500")
	require.NotNil(t, f.Price)
	assert.Equal(t, int64(1500), *f.Price)

	f.Set("price", "abc")
	assert.Nil(t, f.Price, "junk input coerces to nil, never NaN-alikes")

	f.Set("stock", "")
	assert.Nil(t, f.Stock, "empty stock is distinct from zero")

	f.Set("stock", "0")
	require.NotNil(t, f.Stock)
	assert.Equal(t, int64(0), *f.Stock)
}

func TestProductForm_ValidationGating(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl) // no expectations: no request may go out

	f := menu.NewProductForm(t.TempDir())
	f.OpenNew(testCategories())
	f.Set("price", "0")

	_, err := f.Save(context.Background(), menu.NewService(caller))
	require.Error(t, err)

	errs := f.Validate()
	assert.Len(t, errs, 3)
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("description"))
	assert.True(t, errs.Has("price"))
}

func TestProductForm_CreateCapturesServerID(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)

	caller.EXPECT().
		Post(gomock.Any(), "/menu-items/", gomock.Any()).
		Return(json.RawMessage(`{"id":42,"name":"Es Teh","description":"Sweet iced tea","price":8000,"category_id":5,"is_active":true}`), nil)

	f := menu.NewProductForm(t.TempDir())
	f.OpenNew(testCategories())
	f.Set("name", "Es Teh")
	f.Set("description", "Sweet iced tea")
	f.Set("price", "8000")

	saved, err := f.Save(context.Background(), menu.NewService(caller))
	require.NoError(t, err)
	assert.Equal(t, int64(42), saved.ID)

	// The draft is promoted: variants become manageable without reopening.
	assert.Equal(t, int64(42), f.ProductID())
	assert.True(t, f.CanManageVariants())
	assert.Equal(t, menu.ModeEdit, f.Mode())
}

func TestProductForm_OpenEditSeedsDraft(t *testing.T) {
	f := menu.NewProductForm(t.TempDir())

	f.OpenEdit(menu.Product{
		ID: 7, Name: "Soto Ayam", Description: "Chicken soup",
		Price: 22000, Stock: 3, CategoryID: 6, Active: true,
		ImagePath: "/uploads/soto.jpg",
	})

	assert.Equal(t, menu.ModeEdit, f.Mode())
	require.NotNil(t, f.Price)
	assert.Equal(t, int64(22000), *f.Price)
	require.NotNil(t, f.Stock)
	assert.Equal(t, int64(3), *f.Stock)
	assert.Equal(t, "/uploads/soto.jpg", f.ImagePreview(), "preview shows the persisted image, not a staged copy")
	assert.True(t, f.CanManageVariants())
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func stagePNG(t *testing.T, f *menu.ProductForm) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o644))
	require.NoError(t, f.StageImage(path))
}

func TestProductForm_MultipartFallsBackToJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)

	gomock.InOrder(
		caller.EXPECT().
			PostForm(gomock.Any(), "/menu-items/", gomock.Any(), "image", gomock.Any()).
			Return(nil, errors.New("upload rejected")),
		caller.EXPECT().
			Post(gomock.Any(), "/menu-items/", gomock.Any()).
			Return(json.RawMessage(`{"id":43,"name":"Es Teh","description":"Sweet iced tea","price":8000,"category_id":5,"is_active":true}`), nil),
	)

	f := menu.NewProductForm(t.TempDir())
	f.OpenNew(testCategories())
	f.Set("name", "Es Teh")
	f.Set("description", "Sweet iced tea")
	f.Set("price", "8000")
	stagePNG(t, f)

	saved, err := f.Save(context.Background(), menu.NewService(caller))
	require.NoError(t, err)
	assert.Equal(t, int64(43), saved.ID, "record saved without the image on multipart failure")
}

func TestProductForm_ServerRejectionSkipsFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)

	// A 4xx means the payload itself was refused; resending it as JSON
	// would fail the same way, so no Post is expected.
	caller.EXPECT().
		PostForm(gomock.Any(), "/menu-items/", gomock.Any(), "image", gomock.Any()).
		Return(nil, &api.StatusError{Code: 422, Message: "name already taken"})

	f := menu.NewProductForm(t.TempDir())
	f.OpenNew(testCategories())
	f.Set("name", "Es Teh")
	f.Set("description", "Sweet iced tea")
	f.Set("price", "8000")
	stagePNG(t, f)

	_, err := f.Save(context.Background(), menu.NewService(caller))
	require.Error(t, err)

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.Code)
}

func TestProductForm_CloseReleasesPreview(t *testing.T) {
	f := menu.NewProductForm(t.TempDir())
	f.OpenNew(testCategories())
	stagePNG(t, f)

	preview := f.ImagePreview()
	require.FileExists(t, preview)

	f.Close()
	assert.NoFileExists(t, preview)
	assert.Equal(t, menu.ModeClosed, f.Mode())
}

func TestVariantForm_BlocksWithoutParent(t *testing.T) {
	f := menu.NewVariantForm()

	assert.False(t, f.OpenNew(0), "variants need a persisted parent id")
	assert.Equal(t, menu.ModeClosed, f.Mode())

	require.True(t, f.OpenNew(42))
	f.Set("name", "Large")
	f.Set("price", "22000")
	assert.Empty(t, f.Validate())

	p := f.Params()
	assert.Equal(t, int64(42), p.ProductID)
	assert.Equal(t, int64(22000), p.Price)
}
