// Package main is the entry point for autostarter, a command-line tool that
// opens or checks the vendor autostart settings screen on Android devices
// attached over adb.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Guliveer/autostarter/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

const usageText = `Usage: autostarter [flags] [command]

Commands:
  open        open the autostart screen on each device (default)
  check       report whether the autostart screen exists
  available   report whether any known vendor package is installed
  list        print the manufacturer table
  devices     list attached devices
  doctor      diagnose the adb setup
  watch       open the autostart screen on devices as they are attached
  login-item  install | uninstall | status of "watch" at user login
  config      init [path] | path: write or locate the configuration file

Flags:
`

// options holds the parsed command line.
type options struct {
	configPath    string
	showVersion   bool
	devices       string
	adbPath       string
	appPackage    string
	brand         string
	newTask       bool
	onlySupported bool
	json          bool
	logLevel      string

	command string
	args    []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("autostarter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (default: auto-discover)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	fs.StringVar(&opts.devices, "devices", "", "Device serials to target, separated by commas or spaces")
	fs.StringVar(&opts.adbPath, "adb", "", "Path to the adb binary")
	fs.StringVar(&opts.appPackage, "package", "", "Application package for the App info fallback")
	fs.StringVar(&opts.brand, "brand", "", "Use this brand instead of the one reported by the device")
	fs.BoolVar(&opts.newTask, "new-task", false, "Launch with FLAG_ACTIVITY_NEW_TASK")
	fs.BoolVar(&opts.onlySupported, "only-supported", false, "available: also require the device's own screen to resolve")
	fs.BoolVar(&opts.json, "json", false, "Print results as JSON")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.command = "open"
	if rest := fs.Args(); len(rest) > 0 {
		opts.command = rest[0]
		opts.args = rest[1:]
	}
	return opts, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "autostarter %s\n", version)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger, closeLog := initLogger(cfg, stderr)
	defer closeLog()
	defer func() { _ = logger.Sync() }()

	logger.Debug("Starting autostarter",
		zap.String("version", version),
		zap.String("command", opts.command))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	a, err := newApp(cfg, opts, logger, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "autostarter: %v\n", err)
		return 1
	}

	if err := a.dispatch(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(stderr, "autostarter: %v\n", err)
		}
		return 1
	}
	return 0
}

// loadConfig applies the precedence chain: flags > env > file > embedded > defaults.
func loadConfig(opts *options) (*config.Config, error) {
	cli := config.CLIOverrides{
		ADBPath:    opts.adbPath,
		Devices:    config.SplitList(opts.devices),
		AppPackage: opts.appPackage,
		NewTask:    opts.newTask,
		LogLevel:   opts.logLevel,
	}
	if opts.configPath != "" {
		return config.LoadLayered(cli, embeddedConfig, opts.configPath)
	}
	return config.LoadLayered(cli, embeddedConfig)
}
