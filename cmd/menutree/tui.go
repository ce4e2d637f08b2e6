package main

import (
	"errors"
	"fmt"
	"os"

	"menutree/internal/client"
	"menutree/internal/config"
	"menutree/internal/debug"
	"menutree/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

var errNotTerminal = errors.New("the terminal client needs an interactive terminal; use `menutree show` instead")

// TUICmd opens the interactive terminal client.
type TUICmd struct {
	APIURL       string `name:"api-url" help:"Base URL of the menutree server (overrides api.url)."`
	Menu         string `help:"Menu id to open first (defaults to the last one used)."`
	OutputFormat string `help:"Details panel style: rich or plain (overrides ui.output-format)."`
}

func (c *TUICmd) overrides() map[string]any {
	o := map[string]any{}
	if c.APIURL != "" {
		o[config.KeyAPIURL] = c.APIURL
	}
	if c.OutputFormat != "" {
		o[config.KeyOutputFormat] = c.OutputFormat
	}
	return o
}

// Run starts the bubbletea program against the configured server.
func (c *TUICmd) Run(out *Output) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}
	if err := config.ApplyOverrides(c.overrides()); err != nil {
		return err
	}
	cfg, err := c.appConfig(config.Client())
	if err != nil {
		return err
	}
	return runProgram(cfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(out.Stdout))
	})
}

// appConfig turns client settings into the UI configuration.
func (c *TUICmd) appConfig(settings config.ClientSettings) (ui.Config, error) {
	if err := settings.Validate(); err != nil {
		return ui.Config{}, err
	}
	cl, err := client.New(settings.APIURL,
		client.WithTimeout(settings.Timeout),
		client.WithLogger(debug.Logger()),
	)
	if err != nil {
		return ui.Config{}, err
	}
	initial := c.Menu
	if initial == "" {
		initial = settings.LastMenu
	}
	return ui.Config{
		Client:          cl,
		AutoExpandDepth: settings.AutoExpandDepth,
		OutputFormat:    settings.OutputFormat,
		InitialMenu:     initial,
		Timeout:         settings.Timeout,
		SaveLastMenu: func(id string) error {
			return config.SaveValue(config.KeyLastMenu, id)
		},
	}, nil
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) error {
	app, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
