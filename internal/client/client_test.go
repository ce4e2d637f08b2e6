package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"menutree/internal/api"
	appErrors "menutree/internal/errors"
	"menutree/internal/menus"
	"menutree/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBackedClient(t *testing.T) *Client {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(api.NewRouter(menus.NewService(st), zap.NewNop()).Setup())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func TestClientRoundTrip(t *testing.T) {
	c := newBackedClient(t)
	ctx := context.Background()

	m, err := c.CreateMenu(ctx, "Main", "primary")
	require.NoError(t, err)
	r1, err := c.CreateItem(ctx, "R1", m.ID, "")
	require.NoError(t, err)
	c1, err := c.CreateItem(ctx, "C1", m.ID, r1.ID)
	require.NoError(t, err)
	g1, err := c.CreateItem(ctx, "G1", m.ID, c1.ID)
	require.NoError(t, err)
	r2, err := c.CreateItem(ctx, "R2", m.ID, "")
	require.NoError(t, err)

	moved, err := c.MoveItem(ctx, c1.ID, r2.ID, "")
	require.NoError(t, err)
	assert.Equal(t, r2.ID, moved.ParentID)
	assert.Equal(t, 1, moved.Depth)

	tree, err := c.GetMenuTree(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "primary", tree.Menu.Description)
	assert.Equal(t, []string{r1.ID, r2.ID, c1.ID, g1.ID}, tree.Forest.IDs())
	crumbs, err := tree.Forest.Breadcrumb(g1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"R2", "C1", "G1"}, crumbs)

	path, err := c.ItemPath(ctx, g1.ID)
	require.NoError(t, err)
	require.Len(t, path, 3)

	renamed, err := c.RenameItem(ctx, g1.ID, "Leaf")
	require.NoError(t, err)
	assert.Equal(t, "Leaf", renamed.Name)

	got, err := c.GetItem(ctx, g1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Depth)

	list, err := c.ListMenus(ctx, "mai")
	require.NoError(t, err)
	require.Len(t, list, 1)

	stats, err := c.MenuStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 4, stats[0].TotalItems)

	require.NoError(t, c.DeleteItem(ctx, r2.ID))
	require.NoError(t, c.Ready(ctx))
	require.NoError(t, c.DeleteMenu(ctx, m.ID))
}

func TestClientSurfacesServerMessages(t *testing.T) {
	c := newBackedClient(t)
	ctx := context.Background()

	m, err := c.CreateMenu(ctx, "Main", "")
	require.NoError(t, err)
	r1, err := c.CreateItem(ctx, "R1", m.ID, "")
	require.NoError(t, err)
	c1, err := c.CreateItem(ctx, "C1", m.ID, r1.ID)
	require.NoError(t, err)

	_, err = c.MoveItem(ctx, r1.ID, c1.ID, "")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeValidation))
	assert.Contains(t, appErrors.MessageOf(err), "descendants")

	_, err = c.GetMenuTree(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Envelope.StatusCode)
}

func TestBreakerOpensAfterServerFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"statusCode":500,"message":"Internal server error"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithBreaker(2, time.Minute))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.ListMenus(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, "Internal server error", appErrors.MessageOf(err))
	}
	_, err = c.ListMenus(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, appErrors.MessageOf(err), "unreachable")
	assert.Equal(t, int32(2), hits.Load())
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"statusCode":404,"message":"menu x not found"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithBreaker(1, time.Minute))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := c.GetItem(context.Background(), "x")
		assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound), "attempt %d: %v", i, err)
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	_, err = c.ListMenus(context.Background(), "")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeRemoteFailed))
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:3001")
	assert.True(t, appErrors.IsCode(err, appErrors.CodeConfigurationError))
}
