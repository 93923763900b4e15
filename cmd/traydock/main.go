package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/traydock/internal/config"
	"github.com/1broseidon/traydock/internal/control"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "show", "hide", "toggle", "quit":
		os.Exit(runControl(os.Args[1], os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: traydock <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the tray (foreground)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  show                Map the tray window")
	fmt.Fprintln(w, "  hide                Unmap the tray window")
	fmt.Fprintln(w, "  toggle              Show or hide the tray")
	fmt.Fprintln(w, "  quit                Destroy the tray and stop the daemon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'traydock <command> --help' for command-specific options.")
}

// loadConfig reads path, or the default location when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func runControl(name string, args []string) int {
	cmd, _ := control.ParseCommand(name)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/traydock/config.yaml)")
	endpoint := fs.String("endpoint", "", "Control endpoint (default: control.client_endpoint)")
	timeout := fs.Duration("timeout", 0, "Request timeout (default: control.timeout_seconds)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: traydock %s [--endpoint URL] [--timeout DURATION] [--path PATH]\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Send %q to a running tray daemon.\n", name)
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	ep := cfg.Control.ClientEndpoint
	if *endpoint != "" {
		ep = *endpoint
	}
	d := cfg.Control.Timeout()
	if *timeout > 0 {
		d = *timeout
	}

	client := control.NewClient(ep, d)
	if err := client.Do(context.Background(), cmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  traydock config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  traydock config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/traydock/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/traydock/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			var err error
			if cfg, err = loadConfig(*path); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
