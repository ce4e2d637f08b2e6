package ui

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"menutree/internal/api"
	"menutree/internal/client"
	"menutree/internal/domain"
	"menutree/internal/menus"
	"menutree/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type backend struct {
	svc    *menus.Service
	client *client.Client
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "ui.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	svc := menus.NewService(st)
	srv := httptest.NewServer(api.NewRouter(svc, zap.NewNop()).Setup())
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL, client.WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return &backend{svc: svc, client: c}
}

func (b *backend) menu(t *testing.T, name string) domain.Menu {
	t.Helper()
	m, err := b.svc.CreateMenu(context.Background(), menus.MenuInput{Name: name})
	if err != nil {
		t.Fatalf("create menu %s: %v", name, err)
	}
	return m
}

func (b *backend) item(t *testing.T, name, menuID, parentID string) domain.MenuItem {
	t.Helper()
	it, err := b.svc.CreateItem(context.Background(), menus.CreateItemInput{Name: name, MenuID: menuID, ParentID: parentID})
	if err != nil {
		t.Fatalf("create item %s: %v", name, err)
	}
	return it
}

func (b *backend) get(t *testing.T, id string) domain.MenuItem {
	t.Helper()
	it, err := b.svc.GetItem(context.Background(), id)
	if err != nil {
		t.Fatalf("get item %s: %v", id, err)
	}
	return it
}

// scenario builds R1 > C1 > G1 and R2 in a menu called System.
func (b *backend) scenario(t *testing.T) (domain.Menu, map[string]domain.MenuItem) {
	t.Helper()
	m := b.menu(t, "System")
	items := map[string]domain.MenuItem{}
	items["R1"] = b.item(t, "R1", m.ID, "")
	items["C1"] = b.item(t, "C1", m.ID, items["R1"].ID)
	items["G1"] = b.item(t, "G1", m.ID, items["C1"].ID)
	items["R2"] = b.item(t, "R2", m.ID, "")
	return m, items
}

type clipboardRecorder struct {
	copied []string
}

func (c *clipboardRecorder) write(s string) error {
	c.copied = append(c.copied, s)
	return nil
}

// newLoadedApp builds an App, sizes it and runs the initial load to
// completion.
func newLoadedApp(t *testing.T, c Client, mutate func(*Config)) *App {
	t.Helper()
	cfg := Config{
		Client:          c,
		AutoExpandDepth: -1,
		OutputFormat:    "plain",
		Copy:            func(string) error { return nil },
	}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	drive(t, m, m.Init())
	return m
}

// drive runs a command and feeds its messages back into the model until no
// work is left. Spinner ticks are dropped.
func drive(t *testing.T, m *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			drive(t, m, c)
		}
	default:
		_, next := m.Update(msg)
		drive(t, m, next)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key in order and runs the resulting commands.
func press(t *testing.T, m *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drive(t, m, cmd)
	}
}

// typeText types into the focused dialog one rune at a time.
func typeText(t *testing.T, m *App, text string) {
	t.Helper()
	for _, r := range text {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		drive(t, m, cmd)
	}
}

func rowNames(m *App) []string {
	names := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		names = append(names, r.Item.Name)
	}
	return names
}
