package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"menutree/internal/graph"
	"menutree/internal/menus"
)

// VerifyCmd checks every stored menu for hierarchy problems.
type VerifyCmd struct {
	DB string `name:"db" help:"SQLite database path (overrides database.path)." type:"path"`
}

// Run prints the integrity report and fails when problems were found.
func (c *VerifyCmd) Run(out *Output) error {
	ctx := context.Background()
	return withService(ctx, c.DB, func(svc *menus.Service) error {
		problems, err := svc.Verify(ctx)
		if err != nil {
			return err
		}
		all, err := svc.AllItems(ctx)
		if err != nil {
			return err
		}
		printIntegrity(out.Stdout, len(all), problems, graph.DepthCounts(all))
		if len(problems) > 0 {
			return errProblemsFound
		}
		return nil
	})
}

func printIntegrity(w io.Writer, total int, problems []graph.Problem, depths map[int]int) {
	fmt.Fprintln(w, reportTitle.Render("Depth distribution"))
	for _, d := range slices.Sorted(maps.Keys(depths)) {
		fmt.Fprintf(w, "  depth %d: %d\n", d, depths[d])
	}
	if len(problems) == 0 {
		fmt.Fprintln(w, reportOK.Render(fmt.Sprintf("OK: %d items, no problems", total)))
		return
	}
	fmt.Fprintln(w, reportBad.Render(fmt.Sprintf("%d problems:", len(problems))))
	for _, p := range problems {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
