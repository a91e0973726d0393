package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Guliveer/autostarter/internal/adb"
	"github.com/Guliveer/autostarter/internal/autostart"
	"github.com/Guliveer/autostarter/internal/config"
	"github.com/Guliveer/autostarter/internal/doctor"
	"github.com/Guliveer/autostarter/internal/loginitem"
	"github.com/Guliveer/autostarter/internal/manufacturer"
	"github.com/Guliveer/autostarter/internal/models"
	"github.com/Guliveer/autostarter/internal/watch"
)

// maxParallel bounds concurrent adb sessions in multi-device commands.
const maxParallel = 8

// errFailed signals a non-zero exit after the results were already printed.
var errFailed = errors.New("one or more checks failed")

type app struct {
	cfg      *config.Config
	opts     *options
	logger   *zap.Logger
	registry *manufacturer.Registry
	client   *adb.Client
	loginMgr loginitem.Manager

	outMu sync.Mutex
	out   io.Writer
}

func newApp(cfg *config.Config, opts *options, logger *zap.Logger, out io.Writer, clientOpts ...adb.Option) (*app, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	clientOpts = append([]adb.Option{adb.WithTimeout(cfg.ADB.Timeout.Duration)}, clientOpts...)
	return &app{
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
		registry: reg,
		client:   adb.NewClient(cfg.ADB.Path, logger, clientOpts...),
		loginMgr: loginitem.New(),
		out:      out,
	}, nil
}

func (a *app) dispatch(ctx context.Context) error {
	switch a.opts.command {
	case "open", "check", "available":
		return a.runDevices(ctx, a.opts.command)
	case "list":
		return a.list()
	case "devices":
		return a.devices(ctx)
	case "doctor":
		return a.doctor(ctx)
	case "watch":
		return a.watch(ctx)
	case "login-item":
		return a.loginItem()
	case "config":
		return a.configCmd()
	default:
		return fmt.Errorf("unknown command %q (see -help)", a.opts.command)
	}
}

// runDevices runs command on every selected device concurrently and prints
// one report per device plus a summary.
func (a *app) runDevices(ctx context.Context, command string) error {
	serials, err := a.client.Select(ctx, a.cfg.ADB.Devices)
	if err != nil {
		return err
	}

	reports := make([]models.DeviceReport, len(serials))
	var g errgroup.Group
	g.SetLimit(maxParallel)
	for i, serial := range serials {
		g.Go(func() error {
			reports[i] = a.runOne(ctx, serial, command)
			return nil
		})
	}
	_ = g.Wait()

	summary := models.Summarize(command, reports)
	if err := a.printSummary(summary); err != nil {
		return err
	}
	if len(summary.Failed) > 0 {
		return errFailed
	}
	return nil
}

// runOne executes command on a single device. Failures are recorded in the
// report rather than returned.
func (a *app) runOne(ctx context.Context, serial, command string) models.DeviceReport {
	logger := a.logger.With(zap.String("device", serial))
	report := models.DeviceReport{Timestamp: time.Now().UTC()}

	dev := a.client.Device(serial)
	info, err := dev.Info(ctx)
	report.Device = info
	if err != nil {
		report.Error = err.Error()
		logger.Warn("Could not read device info", zap.Error(err))
		return report
	}

	h := a.newHelper(dev, info.Brand)
	m, supported, err := h.Manufacturer(ctx)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Manufacturer = m.Name
	report.Supported = supported

	var result bool
	switch command {
	case "open":
		result, err = h.GetAutoStartPermission(ctx, true, a.cfg.App.NewTask)
	case "check":
		result, err = h.GetAutoStartPermission(ctx, false, false)
	case "available":
		result, err = h.IsAutoStartPermissionAvailable(ctx, a.opts.onlySupported)
	default:
		err = fmt.Errorf("unknown device command %q", command)
	}
	report.Result = result
	if err != nil {
		report.Error = err.Error()
		logger.Warn("Command failed", zap.String("command", command), zap.Error(err))
	}
	return report
}

// newHelper builds a helper for dev. The -brand flag wins over the brand
// already read from the device; with neither the helper reads it itself.
func (a *app) newHelper(dev *adb.Device, brand string) *autostart.Helper {
	opts := []autostart.Option{autostart.WithAppPackage(a.cfg.App.Package)}
	if a.opts.brand != "" {
		brand = a.opts.brand
	}
	if brand != "" {
		opts = append(opts, autostart.WithBrand(brand))
	}
	return autostart.New(dev, a.registry, a.logger, opts...)
}

func (a *app) list() error {
	return a.printManufacturers(a.registry.Manufacturers())
}

func (a *app) devices(ctx context.Context) error {
	entries, err := a.client.Devices(ctx)
	if err != nil {
		return err
	}
	return a.printDevices(entries)
}

func (a *app) doctor(ctx context.Context) error {
	reg := doctor.NewRegistry(a.logger)
	doctor.RegisterDefaults(reg, a.client)

	results := reg.RunAll(ctx)
	if err := a.printChecks(results); err != nil {
		return err
	}
	if !doctor.Healthy(results) {
		return errFailed
	}
	return nil
}

// watch runs the configured action on every device as it is attached, after
// the device finishes booting.
func (a *app) watch(ctx context.Context) error {
	action := a.cfg.Watch.Action
	w := watch.New(a.client, a.cfg.Watch.Interval.Duration, a.logger,
		watch.WithSerials(a.cfg.ADB.Devices))

	w.OnDevice(func(ctx context.Context, serial string) {
		dev := a.client.Device(serial)
		if err := dev.WaitBootCompleted(ctx, bootBackOff(), a.cfg.Watch.BootTimeout.Duration); err != nil {
			if ctx.Err() == nil {
				a.logger.Warn("Device did not become ready",
					zap.String("device", serial), zap.Error(err))
			}
			return
		}
		report := a.runOne(ctx, serial, action)
		if err := a.printReport(report); err != nil {
			a.logger.Error("Writing report failed", zap.Error(err))
		}
	})

	w.Run(ctx)
	return nil
}

func bootBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 10 * time.Second
	return b
}

func (a *app) loginItem() error {
	sub := "status"
	if len(a.opts.args) > 0 {
		sub = a.opts.args[0]
	}

	switch sub {
	case "install":
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		cfgPath := a.opts.configPath
		if cfgPath == "" {
			cfgPath = config.Locate()
		}
		if cfgPath != "" {
			if abs, err := filepath.Abs(cfgPath); err == nil {
				cfgPath = abs
			}
		}
		if err := a.loginMgr.Install(loginitem.WatchCommand(exe, cfgPath)); err != nil {
			return fmt.Errorf("installing login item: %w", err)
		}
		return a.printf("Installed login item at %s\n", a.loginMgr.Location())
	case "uninstall":
		if err := a.loginMgr.Uninstall(); err != nil {
			return fmt.Errorf("removing login item: %w", err)
		}
		return a.printf("Removed login item\n")
	case "status":
		installed, err := a.loginMgr.IsInstalled()
		if err != nil {
			return err
		}
		if !installed {
			_ = a.printf("Login item is not installed\n")
			return errFailed
		}
		return a.printf("Login item is installed at %s\n", a.loginMgr.Location())
	default:
		return fmt.Errorf("unknown login-item command %q (install, uninstall or status)", sub)
	}
}

func (a *app) configCmd() error {
	sub := "path"
	if len(a.opts.args) > 0 {
		sub = a.opts.args[0]
	}

	switch sub {
	case "init":
		path := config.DefaultPath()
		if len(a.opts.args) > 1 {
			path = a.opts.args[1]
		} else if a.opts.configPath != "" {
			path = a.opts.configPath
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.WriteConfig(a.cfg, path); err != nil {
			return fmt.Errorf("writing configuration: %w", err)
		}
		return a.printf("Wrote configuration to %s\n", path)
	case "path":
		path := a.opts.configPath
		if path == "" {
			path = config.Locate()
		}
		if path == "" {
			_ = a.printf("No configuration file found; using built-in defaults\n")
			return errFailed
		}
		return a.printf("%s\n", path)
	default:
		return fmt.Errorf("unknown config command %q (init or path)", sub)
	}
}
