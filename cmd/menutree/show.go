package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"menutree/internal/client"
	"menutree/internal/config"
	"menutree/internal/treeview"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ShowCmd prints one menu, or every menu, as an indented tree.
type ShowCmd struct {
	MenuID      string `arg:"" optional:"" name:"menu-id" help:"Menu to print (default: all menus)."`
	APIURL      string `name:"api-url" help:"Base URL of the menutree server (overrides api.url)."`
	ExpandDepth int    `help:"Print levels 0..N only; -1 prints everything." default:"-1"`
	NoColor     bool   `help:"Disable colors even on a terminal."`
}

// Run fetches the trees through the REST client and prints them.
func (c *ShowCmd) Run(out *Output) error {
	if c.APIURL != "" {
		if err := config.ApplyOverrides(map[string]any{config.KeyAPIURL: c.APIURL}); err != nil {
			return err
		}
	}
	settings := config.Client()
	cl, err := client.New(settings.APIURL, client.WithTimeout(settings.Timeout))
	if err != nil {
		return err
	}

	r := lipgloss.NewRenderer(out.Stdout)
	if c.NoColor || settings.OutputFormat == "plain" || !isTerminal(out.Stdout) {
		r.SetColorProfile(termenv.Ascii)
	}
	return c.show(context.Background(), cl, out.Stdout, newTreePrinter(r))
}

func (c *ShowCmd) show(ctx context.Context, cl *client.Client, w io.Writer, p treePrinter) error {
	ids := []string{c.MenuID}
	if c.MenuID == "" {
		menus, err := cl.ListMenus(ctx, "")
		if err != nil {
			return err
		}
		if len(menus) == 0 {
			fmt.Fprintln(w, "No menus yet. Run `menutree seed` to load the demo data.")
			return nil
		}
		ids = ids[:0]
		for _, m := range menus {
			ids = append(ids, m.ID)
		}
	}

	for k, id := range ids {
		tree, err := cl.GetMenuTree(ctx, id)
		if err != nil {
			return err
		}
		if k > 0 {
			fmt.Fprintln(w)
		}
		p.print(w, tree, c.ExpandDepth)
	}
	return nil
}

type treePrinter struct {
	menu      lipgloss.Style
	line      lipgloss.Style
	item      lipgloss.Style
	collapsed lipgloss.Style
	empty     lipgloss.Style
}

func newTreePrinter(r *lipgloss.Renderer) treePrinter {
	return treePrinter{
		menu:      r.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		line:      r.NewStyle().Foreground(lipgloss.Color("240")),
		item:      r.NewStyle().Foreground(lipgloss.Color("255")),
		collapsed: r.NewStyle().Foreground(lipgloss.Color("246")),
		empty:     r.NewStyle().Foreground(lipgloss.Color("246")).Italic(true),
	}
}

// print writes the menu name followed by its visible rows. A negative depth
// expands everything; otherwise nodes deeper than depth stay hidden and
// their collapsed parents show how many descendants they hide.
func (p treePrinter) print(w io.Writer, tree client.MenuTree, depth int) {
	fmt.Fprintln(w, p.menu.Render(tree.Menu.Name))

	f := tree.Forest
	if f.Len() == 0 {
		fmt.Fprintln(w, p.empty.Render("(no items)"))
		return
	}

	s := treeview.ForMenu(tree.Menu.ID)
	if depth < 0 {
		s = s.ExpandAll(f)
	} else {
		s = s.AutoExpand(f, depth-1)
	}
	for _, row := range treeview.Rows(f, s) {
		line := p.line.Render(row.Prefix) + p.item.Render(row.Item.Name)
		if row.Expandable && !row.Expanded {
			line += p.collapsed.Render(fmt.Sprintf(" (+%d)", len(f.Descendants(row.Item.ID))))
		}
		fmt.Fprintln(w, line)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
