package category_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/category"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		desc string
		want category.Type
	}{
		{desc: "Iced Coffee", want: category.TypeDrink},
		{desc: "Beef Rendang", want: category.TypeFood},
		{desc: "Service Charge", want: category.TypeOther},
		{desc: "Traditional herbal TEA selection", want: category.TypeDrink},
		{desc: "Nasi goreng and friends", want: category.TypeFood},
		{desc: "", want: category.TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, category.InferType(tt.desc))
		})
	}
}

func TestService_List_Transform(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)
	svc := category.NewService(caller)

	payload := `{"data":[
		{"id":1,"name":"Drinks","description":"Coffee and tea","type":"drink","is_displayed":true,"self_order":true,"image_url":"/img/drinks.png","created_at":"2026-01-10T08:00:00Z","updated_at":"2026-01-12T08:00:00Z"},
		{"id":2,"name":"Mains","description":"Beef rendang etc"},
		{"id":3,"name":"Misc","description":"Service charge","type":"weird-kind"}
	],"total":3}`

	caller.EXPECT().
		Get(gomock.Any(), "/menu-categories/", nil).
		Return(json.RawMessage(payload), nil)

	got, total, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 3)

	assert.Equal(t, category.TypeDrink, got[0].Type)
	assert.True(t, got[0].Active)
	assert.True(t, got[0].SelfOrderVisible)
	assert.False(t, got[0].CreatedAt.IsZero())

	// Missing optional fields get explicit defaults, not leaked zero junk.
	assert.True(t, got[1].Active, "is_displayed defaults to visible")
	assert.False(t, got[1].SelfOrderVisible)
	assert.Equal(t, category.TypeFood, got[1].Type, "type inferred from description when absent")
	assert.True(t, got[1].CreatedAt.IsZero())

	// Unknown server type falls back to the description heuristic, then other.
	assert.Equal(t, category.TypeOther, got[2].Type)
}

func loadedStore(t *testing.T, caller *api.MockCaller, onUnauthorized func()) *category.Store {
	t.Helper()

	payload := `[{"id":7,"name":"Drinks","description":"Iced coffee","type":"drink","is_displayed":true,"self_order":false,"updated_at":"2026-01-01T00:00:00Z"}]`
	caller.EXPECT().
		Get(gomock.Any(), "/menu-categories/", nil).
		Return(json.RawMessage(payload), nil)

	st := category.NewStore(category.NewService(caller), onUnauthorized)
	require.NoError(t, st.Load(context.Background()))

	return st
}

func TestStore_ToggleRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)

	st := loadedStore(t, caller, nil)
	original, ok := st.Get(7)
	require.True(t, ok)
	require.True(t, original.Active)

	updatedAt := "2026-01-01T00:00:00Z"

	caller.EXPECT().
		Put(gomock.Any(), "/menu-categories/7/", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body any) (json.RawMessage, error) {
			fields, ok := body.(map[string]any)
			require.True(t, ok)

			// Full record resent, only the flag flipped.
			assert.Equal(t, "Drinks", fields["name"])
			assert.Equal(t, "Iced coffee", fields["description"])

			updatedAt = "2026-02-01T00:00:00Z"

			resp := fmt.Sprintf(
				`{"id":7,"name":"Drinks","description":"Iced coffee","type":"drink","is_displayed":%v,"self_order":false,"updated_at":%q}`,
				fields["is_displayed"], updatedAt,
			)

			return json.RawMessage(resp), nil
		}).
		Times(2)

	require.NoError(t, st.Toggle(context.Background(), 7))
	mid, _ := st.Get(7)
	assert.False(t, mid.Active)

	require.NoError(t, st.Toggle(context.Background(), 7))
	final, _ := st.Get(7)

	assert.Equal(t, original.Active, final.Active)
	assert.Equal(t, original.Name, final.Name)
	assert.Equal(t, original.Type, final.Type)
	assert.NotEqual(t, original.UpdatedAt, final.UpdatedAt)
}

func TestStore_DeletePatchesCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)

	st := loadedStore(t, caller, nil)

	caller.EXPECT().
		Delete(gomock.Any(), "/menu-categories/7/").
		Return(nil, nil)

	require.NoError(t, st.Delete(context.Background(), 7))
	assert.Empty(t, st.Items())
	assert.Equal(t, 0, st.Total())
}

func TestStore_FailedMutationLeavesCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)

	st := loadedStore(t, caller, nil)

	caller.EXPECT().
		Delete(gomock.Any(), "/menu-categories/7/").
		Return(nil, errors.New("conflict"))

	require.Error(t, st.Delete(context.Background(), 7))
	assert.Len(t, st.Items(), 1)

	state, _ := st.State()
	assert.Equal(t, category.StateReady, state, "mutation failure must not poison list state")
}

func TestStore_UnauthorizedForcesLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := api.NewMockCaller(ctrl)

	loggedOut := false

	caller.EXPECT().
		Get(gomock.Any(), "/menu-categories/", nil).
		Return(nil, fmt.Errorf("%w: expired", api.ErrUnauthorized))

	st := category.NewStore(category.NewService(caller), func() { loggedOut = true })

	err := st.Load(context.Background())
	require.Error(t, err)
	assert.True(t, loggedOut)

	state, msg := st.State()
	assert.NotEqual(t, category.StateError, state, "401 is not a page-local error")
	assert.Empty(t, msg)
}
