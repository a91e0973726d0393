// Package manufacturer holds the registry of vendor autostart settings screens.
// Each manufacturer maps one or more device brands (Build.BRAND values) to an
// ordered list of candidate activities that host the vendor's autostart or
// background-launch whitelist.
package manufacturer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// BackgroundOptimizeAction is the settings action OnePlus devices expose when
// none of the chain-launch activities are present.
const BackgroundOptimizeAction = "com.android.settings.action.BACKGROUND_OPTIMIZE"

// ErrInvalidManufacturer is returned when an entry fails validation.
var ErrInvalidManufacturer = errors.New("invalid manufacturer")

// Component identifies a single activity by package and fully qualified class.
type Component struct {
	Package string `yaml:"package" json:"package"`
	Class   string `yaml:"class" json:"class"`
}

// String returns the component in "package/class" form, as understood by am.
func (c Component) String() string {
	return c.Package + "/" + c.Class
}

// FallbackKind selects the extra step taken when no candidate component works.
type FallbackKind int

const (
	FallbackNone       FallbackKind = iota
	FallbackAppDetails              // open the application's "App info" screen
	FallbackAction                  // resolve a settings action instead of a component
)

func (k FallbackKind) String() string {
	switch k {
	case FallbackNone:
		return "none"
	case FallbackAppDetails:
		return "app-details"
	case FallbackAction:
		return "action"
	default:
		return "unknown"
	}
}

// ParseFallbackKind converts a config string into a FallbackKind.
// The empty string maps to FallbackNone.
func ParseFallbackKind(s string) (FallbackKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FallbackNone, nil
	case "app-details":
		return FallbackAppDetails, nil
	case "action":
		return FallbackAction, nil
	default:
		return FallbackNone, fmt.Errorf("unknown fallback %q (expected \"none\", \"app-details\" or \"action\")", s)
	}
}

// Fallback describes the manufacturer-specific step after the generic path fails.
type Fallback struct {
	Kind   FallbackKind
	Action string // only for FallbackAction
}

// Manufacturer is a single registry entry.
type Manufacturer struct {
	Name       string
	Brands     []string
	Components []Component
	Fallback   Fallback
}

// Packages returns the candidate packages in component order, without duplicates.
func (m Manufacturer) Packages() []string {
	return lo.Uniq(lo.Map(m.Components, func(c Component, _ int) string {
		return c.Package
	}))
}

// HasBrand reports whether brand (already normalized) belongs to m.
func (m Manufacturer) HasBrand(brand string) bool {
	return lo.Contains(m.Brands, brand)
}

// clone returns m with its own copies of the brand and component slices.
func (m Manufacturer) clone() Manufacturer {
	m.Brands = slices.Clone(m.Brands)
	m.Components = slices.Clone(m.Components)
	return m
}

// Validate checks that the entry can be used for lookups and launches.
func (m Manufacturer) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidManufacturer)
	}
	if len(m.Brands) == 0 {
		return fmt.Errorf("%w: %s has no brands", ErrInvalidManufacturer, m.Name)
	}
	for _, b := range m.Brands {
		if NormalizeBrand(b) == "" {
			return fmt.Errorf("%w: %s has an empty brand", ErrInvalidManufacturer, m.Name)
		}
	}
	if len(m.Components) == 0 && m.Fallback.Kind == FallbackNone {
		return fmt.Errorf("%w: %s has no components and no fallback", ErrInvalidManufacturer, m.Name)
	}
	for i, c := range m.Components {
		if c.Package == "" || c.Class == "" {
			return fmt.Errorf("%w: %s component %d needs both package and class", ErrInvalidManufacturer, m.Name, i)
		}
	}
	if m.Fallback.Kind == FallbackAction && m.Fallback.Action == "" {
		return fmt.Errorf("%w: %s action fallback without an action", ErrInvalidManufacturer, m.Name)
	}
	return nil
}

// NormalizeBrand lower-cases and trims a brand string. strings.ToLower is
// locale independent, which matches Build.BRAND.lowercase(Locale.ROOT).
func NormalizeBrand(brand string) string {
	return strings.ToLower(strings.TrimSpace(brand))
}

// Registry is an ordered collection of manufacturers. Lookups return the
// first manufacturer whose brand list contains the device brand.
type Registry struct {
	manufacturers []Manufacturer
}

// NewRegistry builds a registry from the given entries. Brands are normalized.
func NewRegistry(entries ...Manufacturer) (*Registry, error) {
	r := &Registry{}
	if err := r.Extend(entries...); err != nil {
		return nil, err
	}
	return r, nil
}

// Default returns a registry populated with the built-in table.
func Default() *Registry {
	return &Registry{manufacturers: cloneAll(builtin)}
}

// Extend validates and merges entries. An entry whose name matches an existing
// manufacturer (case-insensitively) replaces it in place; others are appended.
func (r *Registry) Extend(entries ...Manufacturer) error {
	for _, m := range entries {
		if err := m.Validate(); err != nil {
			return err
		}
		m.Brands = lo.Uniq(lo.Map(m.Brands, func(b string, _ int) string {
			return NormalizeBrand(b)
		}))
		m.Components = slices.Clone(m.Components)

		_, idx, found := lo.FindIndexOf(r.manufacturers, func(existing Manufacturer) bool {
			return strings.EqualFold(existing.Name, m.Name)
		})
		if found {
			r.manufacturers[idx] = m
			continue
		}
		r.manufacturers = append(r.manufacturers, m)
	}
	return nil
}

// Lookup returns the manufacturer for a device brand.
func (r *Registry) Lookup(brand string) (Manufacturer, bool) {
	brand = NormalizeBrand(brand)
	if brand == "" {
		return Manufacturer{}, false
	}
	m, ok := lo.Find(r.manufacturers, func(m Manufacturer) bool {
		return m.HasBrand(brand)
	})
	return m.clone(), ok
}

// ByName returns the manufacturer with the given name (case-insensitive).
func (r *Registry) ByName(name string) (Manufacturer, bool) {
	m, ok := lo.Find(r.manufacturers, func(m Manufacturer) bool {
		return strings.EqualFold(m.Name, name)
	})
	return m.clone(), ok
}

// Packages returns every candidate package across all manufacturers, in
// registry order, without duplicates.
func (r *Registry) Packages() []string {
	return lo.Uniq(lo.FlatMap(r.manufacturers, func(m Manufacturer, _ int) []string {
		return m.Packages()
	}))
}

// Manufacturers returns a deep copy of the registry entries.
func (r *Registry) Manufacturers() []Manufacturer {
	return cloneAll(r.manufacturers)
}

func cloneAll(ms []Manufacturer) []Manufacturer {
	return lo.Map(ms, func(m Manufacturer, _ int) Manufacturer {
		return m.clone()
	})
}

// Len returns the number of manufacturers.
func (r *Registry) Len() int { return len(r.manufacturers) }

// Brands returns every brand known to the registry, in registry order.
func (r *Registry) Brands() []string {
	return lo.Uniq(lo.FlatMap(r.manufacturers, func(m Manufacturer, _ int) []string {
		return m.Brands
	}))
}
