package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"menutree/internal/domain"
	"menutree/internal/menus"
	"menutree/internal/metrics"
	"menutree/internal/store"
	"menutree/internal/wire"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type testServer struct {
	t       *testing.T
	handler http.Handler
	metrics *metrics.Set
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	set := metrics.NewSet()
	svc := menus.NewService(st, menus.WithMutationCounter(set.Mutations))
	rt := NewRouter(svc, zap.NewNop(),
		WithMetrics(set),
		WithClock(func() time.Time { return fixedNow }),
		WithCORSOrigins([]string{"http://localhost:3000"}),
	)
	return &testServer{t: t, handler: rt.Setup(), metrics: set}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func (s *testServer) createMenu(name string) wire.Menu {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/menus", wire.MenuRequest{Name: name})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[wire.Menu](s.t, rec)
}

func (s *testServer) createItem(name, menuID, parentID string) wire.Item {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/menu-items", wire.CreateItemRequest{Name: name, MenuID: menuID, ParentID: wire.Ref(parentID)})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[wire.Item](s.t, rec)
}

func TestGetMenuReturnsNestedItems(t *testing.T) {
	s := newTestServer(t)
	m := s.createMenu("System Management")
	r1 := s.createItem("Systems", m.ID, "")
	c1 := s.createItem("System Code", m.ID, r1.ID)
	s.createItem("Properties", m.ID, "")

	rec := s.do(http.MethodGet, "/api/menus/"+m.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[wire.MenuDetail](t, rec)
	assert.Equal(t, "System Management", detail.Name)
	require.Len(t, detail.Items, 2)
	require.Len(t, detail.Items[0].Children, 1)
	child := detail.Items[0].Children[0]
	assert.Equal(t, c1.ID, child.ID)
	assert.Equal(t, r1.ID, wire.Deref(child.ParentID))
	assert.NotNil(t, child.Children)
	assert.Empty(t, child.Children)
	assert.Equal(t, "Properties", detail.Items[1].Name)
}

func TestCreateAndMoveItems(t *testing.T) {
	s := newTestServer(t)
	m := s.createMenu("Main")
	r1 := s.createItem("R1", m.ID, "")
	c1 := s.createItem("C1", m.ID, r1.ID)
	g1 := s.createItem("G1", m.ID, c1.ID)
	r2 := s.createItem("R2", m.ID, "")

	assert.Nil(t, r1.ParentID)
	assert.Equal(t, 0, r1.Depth)
	assert.Equal(t, 2, g1.Depth)

	rec := s.do(http.MethodPatch, "/api/menu-items/"+c1.ID+"/move", wire.MoveItemRequest{NewParentID: &r2.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decode[wire.Item](t, rec)
	assert.Equal(t, r2.ID, wire.Deref(moved.ParentID))
	assert.Equal(t, 1, moved.Depth)

	rec = s.do(http.MethodGet, "/api/menus/"+m.ID, nil)
	detail := decode[wire.MenuDetail](t, rec)
	require.Len(t, detail.Items, 2)
	assert.Empty(t, detail.Items[0].Children, "R1 lost its child")
	require.Len(t, detail.Items[1].Children, 1)
	grand := detail.Items[1].Children[0].Children
	require.Len(t, grand, 1)
	assert.Equal(t, g1.ID, grand[0].ID)
	assert.Equal(t, 2, grand[0].Depth)

	rec = s.do(http.MethodGet, "/api/menu-items/"+g1.ID+"/path", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	path := decode[[]wire.Item](t, rec)
	names := []string{}
	for _, it := range path {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"R2", "C1", "G1"}, names)

	rec = s.do(http.MethodGet, "/metrics", nil)
	assert.Contains(t, rec.Body.String(),
		`menutree_http_requests_total{method="PATCH",route="/api/menu-items/{itemID}/move",status="200"} 1`)
}

func TestMoveWithEmptyBodyMakesRoot(t *testing.T) {
	s := newTestServer(t)
	m := s.createMenu("Main")
	r1 := s.createItem("R1", m.ID, "")
	c1 := s.createItem("C1", m.ID, r1.ID)

	rec := s.do(http.MethodPatch, "/api/menu-items/"+c1.ID+"/move", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decode[wire.Item](t, rec)
	assert.Nil(t, moved.ParentID)
	assert.Equal(t, 0, moved.Depth)
}

func TestErrorEnvelope(t *testing.T) {
	s := newTestServer(t)
	m := s.createMenu("Main")
	r1 := s.createItem("R1", m.ID, "")
	c1 := s.createItem("C1", m.ID, r1.ID)
	other := s.createMenu("Other")
	o1 := s.createItem("O1", other.ID, "")
	missing := domain.NewID()

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		status  int
		message string
	}{
		{"unknown menu", http.MethodGet, "/api/menus/" + missing, nil, 404, "not found"},
		{"unknown item move", http.MethodPatch, "/api/menu-items/" + missing + "/move", wire.MoveItemRequest{}, 404, "not found"},
		{"unknown parent", http.MethodPost, "/api/menu-items", wire.CreateItemRequest{Name: "x", MenuID: m.ID, ParentID: &missing}, 404, "parent item"},
		{"unknown target menu", http.MethodPatch, "/api/menu-items/" + c1.ID + "/move", wire.MoveItemRequest{NewParentID: &o1.ID, NewMenuID: &missing}, 404, "not found"},
		{"unknown target menu with cycle", http.MethodPatch, "/api/menu-items/" + r1.ID + "/move", wire.MoveItemRequest{NewParentID: &c1.ID, NewMenuID: &missing}, 404, "not found"},
		{"parent outside target menu", http.MethodPatch, "/api/menu-items/" + c1.ID + "/move", wire.MoveItemRequest{NewParentID: &o1.ID, NewMenuID: &m.ID}, 400, "belongs to menu"},
		{"cycle", http.MethodPatch, "/api/menu-items/" + r1.ID + "/move", wire.MoveItemRequest{NewParentID: &c1.ID}, 400, "descendant"},
		{"bad uuid", http.MethodPost, "/api/menu-items", `{"name":"x","menu_id":"nope"}`, 400, "menu_id must be a UUID"},
		{"malformed json", http.MethodPost, "/api/menus", `{"name":`, 400, "invalid request body"},
		{"blank name", http.MethodPost, "/api/menus", wire.MenuRequest{Name: "   "}, 400, "name"},
		{"unknown route", http.MethodGet, "/api/nope", nil, 404, "Cannot GET /api/nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			env := decode[wire.ErrorEnvelope](t, rec)
			assert.Equal(t, tt.status, env.StatusCode)
			assert.Equal(t, fixedNow.Format(time.RFC3339), env.Timestamp)
			assert.Equal(t, strings.SplitN(tt.path, "?", 2)[0], env.Path)
			assert.Contains(t, env.Message, tt.message)
		})
	}
}

func TestMenuCRUDAndSearch(t *testing.T) {
	s := newTestServer(t)
	a := s.createMenu("Admin Tools")
	s.createMenu("Public")
	s.createItem("Users", a.ID, "")

	rec := s.do(http.MethodGet, "/api/menus?search=admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]wire.Menu](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	rec = s.do(http.MethodGet, "/api/menus/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[[]wire.MenuStats](t, rec)
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].TotalItems)
	assert.Equal(t, 1, stats[0].RootItems)
	assert.Equal(t, "Public", stats[1].Name)
	assert.Equal(t, 0, stats[1].TotalItems)
	assert.Equal(t, 0, stats[1].RootItems)
	assert.Equal(t, 0, stats[1].MaxDepth)

	rec = s.do(http.MethodPut, "/api/menus/"+a.ID, wire.MenuRequest{Name: "Admin", Description: "ops"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops", decode[wire.Menu](t, rec).Description)

	rec = s.do(http.MethodDelete, "/api/menus/"+a.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/menus/"+a.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenameAndDeleteItem(t *testing.T) {
	s := newTestServer(t)
	m := s.createMenu("Main")
	r1 := s.createItem("R1", m.ID, "")
	s.createItem("C1", m.ID, r1.ID)

	rec := s.do(http.MethodPatch, "/api/menu-items/"+r1.ID, wire.RenameItemRequest{Name: "Root"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Root", decode[wire.Item](t, rec).Name)

	rec = s.do(http.MethodDelete, "/api/menu-items/"+r1.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/menus/"+m.ID, nil)
	assert.Empty(t, decode[wire.MenuDetail](t, rec).Items)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	s.createMenu("Main")
	rec = s.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `menutree_tree_mutations_total{op="create_menu",result="ok"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/menus", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

type failingService struct {
	MenuService
	err error
}

func (f failingService) Ping(context.Context) error { return f.err }

func (f failingService) ListMenus(context.Context, string) ([]domain.Menu, error) {
	return nil, f.err
}

func TestInternalErrorsAreHidden(t *testing.T) {
	svc := failingService{err: errors.New("disk on fire")}
	handler := NewRouter(svc, zap.NewNop()).Setup()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menus", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode[wire.ErrorEnvelope](t, rec)
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotContains(t, rec.Body.String(), "disk on fire")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPanicsBecomeEnvelopes(t *testing.T) {
	// The embedded nil interface panics on any method not overridden.
	handler := NewRouter(failingService{}, zap.NewNop()).Setup()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menus/stats", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode[wire.ErrorEnvelope](t, rec).Message)
}
