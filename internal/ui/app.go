// Package ui is the terminal client: a menu switcher, the item tree, a
// details pane and the dialogs that drive create, rename, move and delete
// through the REST API.
package ui

import (
	"context"
	"errors"
	"time"

	"menutree/internal/client"
	"menutree/internal/domain"
	"menutree/internal/graph"
	"menutree/internal/treeview"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	minTreeWidth      = 24
	minViewportWidth  = 20
	minViewportHeight = 3
)

// Client is the subset of the REST client the UI needs.
type Client interface {
	ListMenus(ctx context.Context, search string) ([]domain.Menu, error)
	GetMenuTree(ctx context.Context, id string) (client.MenuTree, error)
	CreateItem(ctx context.Context, name, menuID, parentID string) (domain.MenuItem, error)
	MoveItem(ctx context.Context, id, newParentID, newMenuID string) (domain.MenuItem, error)
	RenameItem(ctx context.Context, id, name string) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
}

// Config configures a new App.
type Config struct {
	Client Client
	// AutoExpandDepth is the deepest level expanded when a menu loads.
	// Negative means treeview.DefaultAutoExpandDepth.
	AutoExpandDepth int
	// OutputFormat is "rich" (glamour) or "plain" for the details pane.
	OutputFormat string
	// InitialMenu is selected on startup when it exists.
	InitialMenu string
	// Timeout bounds each API call; zero leaves calls unbounded.
	Timeout time.Duration
	// SaveLastMenu persists the active menu id; nil disables it.
	SaveLastMenu func(menuID string) error
	// Copy writes to the system clipboard; nil uses atotto/clipboard.
	Copy func(string) error
}

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAddChild
	dialogAddRoot
	dialogRename
	dialogDelete
)

// App is the bubbletea model of the terminal client.
type App struct {
	client       Client
	keys         KeyMap
	help         help.Model
	spinner      spinner.Model
	viewport     viewport.Model
	input        textinput.Model
	timeout      time.Duration
	saveLastMenu func(string) error
	copy         func(string) error

	menus       []domain.Menu
	menuIdx     int
	initialMenu string

	forest          *graph.Forest
	state           treeview.State
	groupCollapsed  bool
	rows            []treeview.Row
	cursor          int // 0 is the menu row, i+1 is rows[i]
	offset          int
	autoExpandDepth int

	loading   bool
	status    string
	statusErr bool

	dialog       dialogKind
	dialogTarget domain.MenuItem
	marked       *domain.MenuItem
	showHelp     bool

	outputFormat string
	markdown     func(string) string
	renderWidth  int

	width  int
	height int
	ready  bool
}

// NewApp builds the model. It does no I/O; loading starts in Init.
func NewApp(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, errors.New("ui: client is required")
	}
	depth := cfg.AutoExpandDepth
	if depth < 0 {
		depth = treeview.DefaultAutoExpandDepth
	}
	copyFn := cfg.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.CharLimit = 255
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleSpinner

	return &App{
		client:          cfg.Client,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		spinner:         sp,
		viewport:        viewport.New(minViewportWidth, minViewportHeight),
		input:           ti,
		timeout:         cfg.Timeout,
		saveLastMenu:    cfg.SaveLastMenu,
		copy:            copyFn,
		initialMenu:     cfg.InitialMenu,
		autoExpandDepth: depth,
		outputFormat:    cfg.OutputFormat,
		loading:         true,
	}, nil
}

// Init implements tea.Model.
func (m *App) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadMenusCmd(false))
}

// currentMenu returns the active menu, if any.
func (m *App) currentMenu() (domain.Menu, bool) {
	if m.menuIdx < 0 || m.menuIdx >= len(m.menus) {
		return domain.Menu{}, false
	}
	return m.menus[m.menuIdx], true
}

// selectedItem returns the item under the cursor. The menu row has no item.
func (m *App) selectedItem() (domain.MenuItem, bool) {
	if m.cursor <= 0 || m.cursor > len(m.rows) {
		return domain.MenuItem{}, false
	}
	return m.rows[m.cursor-1].Item, true
}

// Breadcrumb returns the names from the menu down to the selection.
func (m *App) Breadcrumb() []string {
	menu, ok := m.currentMenu()
	if !ok {
		return nil
	}
	crumbs := []string{menu.Name}
	if m.forest == nil || m.state.Selected() == "" {
		return crumbs
	}
	names, err := m.forest.Breadcrumb(m.state.Selected())
	if err != nil {
		return crumbs
	}
	return append(crumbs, names...)
}

// State exposes the current view state.
func (m *App) State() treeview.State { return m.state }

// Status returns the status line text.
func (m *App) Status() string { return m.status }

func (m *App) startLoading() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	return m.spinner.Tick
}

func (m *App) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *App) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
