// Package autostart finds and opens the vendor settings screen that controls
// whether an application may start in the background.
//
// The helper resolves the device brand to a manufacturer entry, checks that
// one of the manufacturer's packages is installed, and then either launches
// the first candidate activity that resolves or only reports whether one
// exists. Manufacturers with inconsistent entry points across OS versions
// carry a fallback that is tried when no candidate works.
package autostart

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Guliveer/autostarter/internal/intent"
	"github.com/Guliveer/autostarter/internal/manufacturer"
	"github.com/Guliveer/autostarter/internal/platform"
)

// Helper checks and opens the autostart screen of one device.
type Helper struct {
	platform   platform.Platform
	registry   *manufacturer.Registry
	logger     *zap.Logger
	appPackage string
	brand      string
}

// Option configures a Helper.
type Option func(*Helper)

// WithAppPackage sets the package whose "App info" screen is opened by the
// app-details fallback. Without it that fallback never succeeds.
func WithAppPackage(pkg string) Option {
	return func(h *Helper) { h.appPackage = pkg }
}

// WithBrand skips brand detection and uses brand instead.
func WithBrand(brand string) Option {
	return func(h *Helper) { h.brand = brand }
}

// New creates a Helper for p. A nil registry means manufacturer.Default().
func New(p platform.Platform, reg *manufacturer.Registry, logger *zap.Logger, opts ...Option) *Helper {
	if reg == nil {
		reg = manufacturer.Default()
	}
	h := &Helper{
		platform: p,
		registry: reg,
		logger:   logger.Named("autostart").With(zap.String("device", p.Name())),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Manufacturer resolves the device brand to a registry entry. The boolean is
// false when the brand is not supported.
func (h *Helper) Manufacturer(ctx context.Context) (manufacturer.Manufacturer, bool, error) {
	brand := h.brand
	if brand == "" {
		b, err := h.platform.Brand(ctx)
		if err != nil {
			return manufacturer.Manufacturer{}, false, fmt.Errorf("detecting brand: %w", err)
		}
		brand = b
	}
	m, ok := h.registry.Lookup(brand)
	return m, ok, nil
}

// GetAutoStartPermission opens the autostart screen when open is true, or only
// checks that it exists otherwise. newTask adds FLAG_ACTIVITY_NEW_TASK to the
// launched intent. It returns true when the screen was opened (or exists).
//
// A failure to launch a resolved candidate is returned as an error and no
// fallback is attempted afterwards.
func (h *Helper) GetAutoStartPermission(ctx context.Context, open, newTask bool) (bool, error) {
	m, ok, err := h.Manufacturer(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		h.logger.Debug("Brand has no known autostart screen")
		return false, nil
	}

	logger := h.logger.With(zap.String("manufacturer", m.Name), zap.Bool("open", open))

	done, err := h.tryComponents(ctx, m, open, newTask)
	if err != nil || done {
		return done, err
	}

	switch m.Fallback.Kind {
	case manufacturer.FallbackAppDetails:
		logger.Debug("Falling back to app details screen")
		return h.tryAppDetails(ctx, open, newTask), nil
	case manufacturer.FallbackAction:
		logger.Debug("Falling back to settings action", zap.String("action", m.Fallback.Action))
		return h.tryIntents(ctx, []intent.Intent{intent.ForAction(m.Fallback.Action, newTask)}, open)
	default:
		logger.Debug("No autostart screen found")
		return false, nil
	}
}

// IsAutoStartPermissionAvailable reports whether any known vendor package is
// installed. With onlyIfSupported it additionally requires that the screen of
// the device's own manufacturer can be resolved.
func (h *Helper) IsAutoStartPermissionAvailable(ctx context.Context, onlyIfSupported bool) (bool, error) {
	for _, pkg := range h.registry.Packages() {
		installed, err := h.platform.PackageInstalled(ctx, pkg)
		if err != nil {
			return false, err
		}
		if !installed {
			continue
		}
		h.logger.Debug("Found autostart package", zap.String("package", pkg))
		if !onlyIfSupported {
			return true, nil
		}
		// The answer does not depend on which package was found.
		return h.GetAutoStartPermission(ctx, false, false)
	}
	return false, nil
}

// tryComponents is the generic path shared by every manufacturer.
func (h *Helper) tryComponents(ctx context.Context, m manufacturer.Manufacturer, open, newTask bool) (bool, error) {
	installed, err := h.anyInstalled(ctx, m.Packages())
	if err != nil || !installed {
		return false, err
	}
	intents := lo.Map(m.Components, func(c manufacturer.Component, _ int) intent.Intent {
		return intent.ForComponent(c, newTask)
	})
	return h.tryIntents(ctx, intents, open)
}

func (h *Helper) tryIntents(ctx context.Context, intents []intent.Intent, open bool) (bool, error) {
	if open {
		return h.openFirst(ctx, intents)
	}
	return h.anyFound(ctx, intents)
}

func (h *Helper) anyInstalled(ctx context.Context, pkgs []string) (bool, error) {
	for _, pkg := range pkgs {
		installed, err := h.platform.PackageInstalled(ctx, pkg)
		if err != nil {
			return false, err
		}
		if installed {
			return true, nil
		}
	}
	return false, nil
}

func (h *Helper) anyFound(ctx context.Context, intents []intent.Intent) (bool, error) {
	for _, in := range intents {
		found, err := h.platform.ActivityFound(ctx, in)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// openFirst launches the first intent that resolves.
func (h *Helper) openFirst(ctx context.Context, intents []intent.Intent) (bool, error) {
	for _, in := range intents {
		found, err := h.platform.ActivityFound(ctx, in)
		if err != nil {
			return false, err
		}
		if !found {
			continue
		}
		if err := h.platform.StartActivity(ctx, in); err != nil {
			return false, fmt.Errorf("opening autostart screen: %w", err)
		}
		h.logger.Info("Opened autostart screen", zap.Stringer("intent", in))
		return true, nil
	}
	return false, nil
}

// tryAppDetails opens (or resolves) the application's "App info" screen.
// Launch errors are logged and reported as false.
func (h *Helper) tryAppDetails(ctx context.Context, open, newTask bool) bool {
	if h.appPackage == "" {
		h.logger.Warn("App details fallback needs an application package")
		return false
	}
	in := intent.AppDetails(h.appPackage, newTask)

	if open {
		if err := h.platform.StartActivity(ctx, in); err != nil {
			h.logger.Warn("Could not open app details", zap.Stringer("intent", in), zap.Error(err))
			return false
		}
		h.logger.Info("Opened app details screen", zap.String("package", h.appPackage))
		return true
	}

	found, err := h.platform.ActivityFound(ctx, in)
	if err != nil {
		h.logger.Warn("Could not resolve app details", zap.Stringer("intent", in), zap.Error(err))
		return false
	}
	return found
}
