package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/domain/services"
	"github.com/ochairo/packdesc/internal/external-adapters/toml"
	"github.com/ochairo/packdesc/internal/external-adapters/yaml"
)

func runDeps(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("deps", flag.ExitOnError)
	var (
		manifest = fs.String("manifest", "build.yml", "Path to the build manifest (.yml, .yaml or .toml)")
		showAll  = fs.Bool("all", false, "Also list disabled dependencies with their reasons")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: packdesc deps [options]

List the dependencies declared in a build manifest, with variables expanded.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  packdesc deps
  packdesc deps --manifest build.toml --all
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if err := executeDeps(ctx, *manifest, *showAll, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeDeps(ctx context.Context, manifest string, showAll bool, out io.Writer) error {
	repo := yaml.NewManifestRepository()
	repo.Register(".toml", toml.NewManifestParser())

	intent, err := repo.GetIntent(ctx, manifest)
	if err != nil {
		return err
	}

	deps, err := services.ExpandDependencies(intent.Dependencies, intent.Variables)
	if err != nil {
		return err
	}
	set := entities.NewDependencySet(deps)

	active := set.Active()
	fmt.Fprintf(out, "Active dependencies (%d):\n\n", len(active))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, d := range active {
		fmt.Fprintf(w, "  %s\t%s\n", d.Configuration, d.Coordinate())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	disabled := set.Disabled()
	if !showAll {
		if len(disabled) > 0 {
			fmt.Fprintf(out, "\n%d disabled dependencies hidden (use --all)\n", len(disabled))
		}
		return nil
	}

	fmt.Fprintf(out, "\nDisabled dependencies (%d):\n\n", len(disabled))
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, d := range disabled {
		reason := d.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", d.Configuration, d.Coordinate(), reason)
	}
	return w.Flush()
}
