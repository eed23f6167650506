// riverd CLI - synthetic-data streaming server
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/getriverd/riverd/pkg/config"
	"github.com/getriverd/riverd/pkg/generator"
	"github.com/getriverd/riverd/pkg/logging"
	"github.com/getriverd/riverd/pkg/server"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Command represents a registered CLI command.
type Command struct {
	Name  string
	Short string
	Run   func(args []string) error
}

// buildRegistry creates the command registry.
func buildRegistry() []*Command {
	return []*Command{
		{Name: "serve", Short: "Start the streaming server (default command)", Run: runServe},
		{Name: "keys", Short: "List the registered placeholder keys", Run: runKeys},
		{Name: "version", Short: "Show version information", Run: runVersion},
		{Name: "help", Short: "Show this help message", Run: nil},
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	registry := buildRegistry()

	command := "serve"
	var cmdArgs []string

	switch {
	case len(args) == 0:
		// No args, run serve with defaults.
	case args[0] == "--help" || args[0] == "-h" || args[0] == "help":
		printUsage(registry)
		return nil
	case args[0] == "--version" || args[0] == "-v":
		return runVersion(nil)
	case args[0][0] == '-':
		// Flags passed directly, run serve with them.
		cmdArgs = args
	default:
		command = args[0]
		cmdArgs = args[1:]
	}

	for _, cmd := range registry {
		if cmd.Name == command {
			if cmd.Run == nil {
				printUsage(registry)
				return nil
			}
			return cmd.Run(cmdArgs)
		}
	}
	return fmt.Errorf("unknown command: %s\n\nRun 'riverd --help' for usage", command)
}

// runServe starts the server and blocks until SIGINT/SIGTERM.
func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address (overrides config)")
	configFile := fs.String("config", "", "path to a YAML or JSON config file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	srv := server.New(cfg, server.WithLogger(log))
	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Printf("riverd listening on %s\n", srv.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutting down...")

	return srv.Stop()
}

// runKeys prints the registered placeholder keys, one per line.
func runKeys(args []string) error {
	for _, key := range generator.Default().Keys() {
		fmt.Println(key)
	}
	return nil
}

// runVersion prints version information.
func runVersion(args []string) error {
	fmt.Printf("riverd %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	return nil
}

func printUsage(registry []*Command) {
	fmt.Print("riverd - synthetic-data streaming server\n\n")
	fmt.Print("Usage:\n")
	fmt.Print("  riverd                       Start the server with defaults\n")
	fmt.Print("  riverd <command> [flags]     Run a specific command\n\n")
	fmt.Print("Commands:\n")
	for _, cmd := range registry {
		fmt.Printf("  %-12s %s\n", cmd.Name, cmd.Short)
	}
	fmt.Print(`
Serve Flags:
  --addr          Listen address (default :8000)
  --config        Path to a YAML or JSON config file
  --log-level     Log level: debug, info, warn, error
  --log-format    Log format: text or json

Examples:
  # Start with defaults and stream a shape
  riverd
  curl -N 'localhost:8000/?interval_min=1000&interval_max=3000&shape={"id":"{uuid}"}'

  # NDJSON instead of SSE
  curl -N 'localhost:8000/?interval_min=1000&interval_max=3000&format=ndjson&shape={"n":"{name}"}'

  # List available placeholder keys
  riverd keys
`)
	fmt.Println()
}
