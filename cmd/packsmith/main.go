// Package main is the command line entry point for Packsmith's file
// type tooling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/packsmith/internal/filetype"
	"github.com/dshills/packsmith/internal/filetype/loader"
	"github.com/dshills/packsmith/internal/pack"
	"github.com/dshills/packsmith/internal/plugin"
	"github.com/dshills/packsmith/internal/vfs"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

type options struct {
	projectDir string
	typesDir   string
	pluginsDir string
}

func run() int {
	opts, args := parseFlags()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	resolver, reg, cleanup, err := buildResolver(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cleanup()

	switch cmd := args[0]; cmd {
	case "id":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: packsmith id <path>")
			return 2
		}
		id, err := resolver.ID(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(id)
	case "guess":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: packsmith guess <file>")
			return 2
		}
		handle := vfs.NewHandle(vfs.NewOSFS(), args[1])
		folder := resolver.GuessFolder(context.Background(), handle)
		if folder == "" {
			fmt.Fprintln(os.Stderr, "no suggestion")
			return 1
		}
		fmt.Println(folder)
	case "list":
		for _, id := range reg.IDs() {
			fmt.Println(id)
		}
		for _, def := range reg.PluginFileTypes() {
			fmt.Printf("%s (plugin)\n", def.ID)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		flag.Usage()
		return 2
	}
	return 0
}

// buildResolver wires the registry, project and plugins from the
// command line options.
func buildResolver(opts options) (*filetype.Resolver, *filetype.Registry, func(), error) {
	reg := filetype.NewRegistry()

	if opts.typesDir != "" {
		defs, err := loader.New(opts.typesDir).Load()
		if err != nil {
			return nil, nil, nil, err
		}
		reg.Setup(defs)
	}

	cleanup := func() {}
	if opts.pluginsDir != "" {
		manager := plugin.NewManager(reg)
		if err := manager.LoadAll(opts.pluginsDir); err != nil {
			return nil, nil, nil, err
		}
		cleanup = manager.UnloadAll
	}

	var paths filetype.PathResolver
	if opts.projectDir != "" {
		proj, err := pack.LoadProject(opts.projectDir)
		if err != nil && !errors.Is(err, pack.ErrNoProjectFile) {
			cleanup()
			return nil, nil, nil, err
		}
		if proj != nil {
			paths = proj
		}
	}

	return filetype.NewResolver(reg, paths), reg, cleanup, nil
}

func parseFlags() (options, []string) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.projectDir, "project", ".", "Project directory")
	flag.StringVar(&opts.projectDir, "p", ".", "Project directory (shorthand)")
	flag.StringVar(&opts.typesDir, "types", "types", "File type definition directory")
	flag.StringVar(&opts.pluginsDir, "plugins", "", "Plugin directory")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Packsmith - file type tooling for asset pack projects\n\n")
		fmt.Fprintf(os.Stderr, "Usage: packsmith [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  id <path>     Print the file type id for a project path\n")
		fmt.Fprintf(os.Stderr, "  guess <file>  Suggest a destination folder for an unplaced file\n")
		fmt.Fprintf(os.Stderr, "  list          List registered file type ids\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Packsmith %s\n", version)
		os.Exit(0)
	}

	return opts, flag.Args()
}
