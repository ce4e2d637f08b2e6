package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version information - injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

// VersionCmd prints build information.
type VersionCmd struct{}

// Run prints the version to stdout.
func (c *VersionCmd) Run(out *Output) error {
	printVersion(out.Stdout)
	return nil
}

// versionString is the one-line form used by --version.
func versionString() string {
	s := Version
	if Build != "unknown" && Build != "" {
		s += " (build: " + Build + ")"
	}
	return s
}

// printVersion prints the version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "menutree version %s", Version)

	if Build != "unknown" && Build != "" {
		fmt.Fprintf(w, " (build: %s)", Build)
	}

	if BuildTime != "" {
		fmt.Fprintf(w, " [%s]", BuildTime)
	}

	fmt.Fprintln(w)

	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// Development builds carry the VCS revision in the build info.
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
					fmt.Fprintf(w, "Commit: %s\n", setting.Value[:7])
					break
				}
			}
		}
	}
}
