package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"menutree/internal/config"
	"menutree/internal/debug"

	"github.com/alecthomas/kong"
)

// errProblemsFound makes verify and seed exit non-zero without printing a
// second error line.
var errProblemsFound = errors.New("integrity problems found")

// CLI is the top-level command structure for menutree.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`

	Serve      ServeCmd   `cmd:"" help:"Run the REST server."`
	TUI        TUICmd     `cmd:"" name:"tui" help:"Open the terminal client."`
	Show       ShowCmd    `cmd:"" help:"Print menu trees to stdout."`
	Seed       SeedCmd    `cmd:"" help:"Load menus and items from YAML into the store."`
	Verify     VerifyCmd  `cmd:"" help:"Check the stored hierarchy for orphans, cycles and depth drift."`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information."`
}

// Globals are flags shared by every command.
type Globals struct {
	Dir        string `short:"C" help:"Search for the project config from DIR instead of the working directory." type:"existingdir" placeholder:"DIR"`
	Config     string `help:"Project config file (default: .menutree/config.yaml searched upward)." type:"path" placeholder:"FILE"`
	UserConfig string `help:"User config file (default: ~/.menutree/config.yaml)." type:"path" placeholder:"FILE"`
	Debug      bool   `help:"Write a debug log to ~/.menutree/debug.log."`
}

func (g *Globals) configOptions() []config.Option {
	var opts []config.Option
	if g.Dir != "" {
		opts = append(opts, config.WithWorkingDir(g.Dir))
	}
	if g.Config != "" {
		opts = append(opts, config.WithProjectConfig(g.Config))
	}
	if g.UserConfig != "" {
		opts = append(opts, config.WithUserConfig(g.UserConfig))
	}
	return opts
}

// Output carries the streams commands write to.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (g *Globals) setup(stderr io.Writer) error {
	if err := config.Initialize(g.configOptions()...); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	if err := debug.Init(g.Debug || config.GetBool(config.KeyDebug)); err != nil {
		return fmt.Errorf("initialize debug log: %w", err)
	}
	if debug.Enabled() {
		if path, err := debug.GetLogPath(); err == nil {
			fmt.Fprintf(stderr, "debug log: %s\n", path)
		}
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Exit))
}

// run parses args and runs the selected command. It returns the process exit
// code.
func run(args []string, stdout, stderr io.Writer, exit func(int)) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("menutree"),
		kong.Description("Hierarchical menu trees: REST server, terminal client and tools."),
		kong.Vars{"version": versionString()},
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 2
	}

	if err := cli.setup(stderr); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 1
	}
	defer debug.Close()

	if err := ctx.Run(&cli.Globals, &Output{Stdout: stdout, Stderr: stderr}); err != nil {
		if !errors.Is(err, errProblemsFound) {
			fmt.Fprintf(stderr, "error: %s\n", err)
		}
		return 1
	}
	return 0
}
