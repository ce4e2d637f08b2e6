package main

import (
	"context"
	"fmt"
	"io"

	"menutree/internal/config"
	"menutree/internal/logging"
	"menutree/internal/menus"
	"menutree/internal/seed"
	"menutree/internal/store"

	"github.com/charmbracelet/lipgloss"
)

var (
	reportTitle = lipgloss.NewStyle().Bold(true)
	reportOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	reportBad   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// SeedCmd loads menus and items from YAML into the store.
type SeedCmd struct {
	File       string `help:"Seed file to load instead of the built-in System Management menu." type:"existingfile" placeholder:"FILE"`
	NoDemoData bool   `help:"Skip the built-in test menus."`
	Reset      bool   `help:"Delete every existing menu and item first."`
	DB         string `name:"db" help:"SQLite database path (overrides database.path)." type:"path"`
}

// Run applies the selected seed and prints a summary.
func (c *SeedCmd) Run(out *Output) error {
	f, err := c.source()
	if err != nil {
		return err
	}
	logger, err := logging.NewWithWriter(config.GetString(config.KeyLogLevel), logging.FormatConsole, out.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	return withService(ctx, c.DB, func(svc *menus.Service) error {
		sum, err := seed.Apply(ctx, svc, f, seed.Options{Reset: c.Reset, Logger: logger.Named("seed")})
		if err != nil {
			return err
		}
		printSeedSummary(out.Stdout, sum)
		if len(sum.Problems) > 0 {
			return errProblemsFound
		}
		return nil
	})
}

// source picks the seed file: the --file contents or the built-in system
// menu, followed by the demo menus unless disabled.
func (c *SeedCmd) source() (seed.File, error) {
	f := seed.System()
	if c.File != "" {
		loaded, err := seed.Load(c.File)
		if err != nil {
			return seed.File{}, err
		}
		f = loaded
	}
	if !c.NoDemoData {
		f = f.Merge(seed.Demo())
	}
	return f, nil
}

// withService opens the configured store (or dbPath when set) for the
// duration of fn.
func withService(ctx context.Context, dbPath string, fn func(*menus.Service) error) error {
	if dbPath == "" {
		dbPath = config.GetString(config.KeyDatabasePath)
	}
	st, err := store.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()
	return fn(menus.NewService(st))
}

func printSeedSummary(w io.Writer, sum seed.Summary) {
	fmt.Fprintln(w, reportTitle.Render(fmt.Sprintf("Seeded %d menus with %d items", len(sum.Menus), sum.Items)))
	for _, m := range sum.Menus {
		fmt.Fprintf(w, "  %-28s %4d items  %s\n", m.Menu.Name, m.Items, m.Menu.ID)
	}
	fmt.Fprintln(w)
	printIntegrity(w, sum.Items, sum.Problems, sum.DepthCounts)
}
