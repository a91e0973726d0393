package manufacturer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	reg := Default()

	tests := []struct {
		brand string
		want  string
		found bool
	}{
		{"xiaomi", "Xiaomi", true},
		{"Redmi", "Xiaomi", true},
		{"  POCO ", "Xiaomi", true},
		{"honor", "Honor", true},
		{"HUAWEI", "Huawei", true},
		{"motorola", "Lenovo", true},
		{"OnePlus", "OnePlus", true},
		{"realme", "Realme", true},
		{"google", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.brand, func(t *testing.T) {
			m, ok := reg.Lookup(tt.brand)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, m.Name)
		})
	}
}

func TestBuiltinTableIsValid(t *testing.T) {
	reg := Default()
	require.Equal(t, 12, reg.Len())

	seen := map[string]bool{}
	for _, m := range reg.Manufacturers() {
		require.NoError(t, m.Validate(), m.Name)
		assert.False(t, seen[m.Name], "duplicate manufacturer %s", m.Name)
		seen[m.Name] = true
		for _, b := range m.Brands {
			assert.Equal(t, NormalizeBrand(b), b, "brand %q of %s is not normalized", b, m.Name)
		}
	}
}

func TestFallbacks(t *testing.T) {
	reg := Default()

	oppo, ok := reg.ByName("oppo")
	require.True(t, ok)
	assert.Equal(t, FallbackAppDetails, oppo.Fallback.Kind)

	realme, ok := reg.ByName("Realme")
	require.True(t, ok)
	assert.Equal(t, FallbackAppDetails, realme.Fallback.Kind)

	onePlus, ok := reg.ByName("OnePlus")
	require.True(t, ok)
	assert.Equal(t, FallbackAction, onePlus.Fallback.Kind)
	assert.Equal(t, BackgroundOptimizeAction, onePlus.Fallback.Action)

	xiaomi, ok := reg.ByName("Xiaomi")
	require.True(t, ok)
	assert.Equal(t, FallbackNone, xiaomi.Fallback.Kind)
}

func TestManufacturerPackages(t *testing.T) {
	asus, ok := Default().ByName("Asus")
	require.True(t, ok)
	assert.Equal(t, []string{"com.asus.mobilemanager"}, asus.Packages())

	oppo, ok := Default().ByName("Oppo")
	require.True(t, ok)
	assert.Equal(t, []string{
		"com.coloros.safecenter",
		"com.oppo.safe",
		"com.coloros.oppoguardelf",
	}, oppo.Packages())
}

func TestRegistryPackagesAreUnique(t *testing.T) {
	pkgs := Default().Packages()
	require.NotEmpty(t, pkgs)

	assert.Equal(t, "com.miui.securitycenter", pkgs[0])
	seen := map[string]bool{}
	for _, p := range pkgs {
		assert.False(t, seen[p], "duplicate package %s", p)
		seen[p] = true
	}
	assert.True(t, seen["com.huawei.systemmanager"])
	assert.True(t, seen["com.realme.securitycenter"])
}

func TestExtend(t *testing.T) {
	reg := Default()
	before := reg.Len()

	err := reg.Extend(Manufacturer{
		Name:       "Tecno",
		Brands:     []string{" TECNO ", "tecno"},
		Components: []Component{{"com.transsion.phonemaster", "com.cyin.himgr.autostart.AutoStartActivity"}},
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, reg.Len())

	m, ok := reg.Lookup("Tecno")
	require.True(t, ok)
	assert.Equal(t, []string{"tecno"}, m.Brands)

	// Same name replaces in place.
	err = reg.Extend(Manufacturer{
		Name:       "xiaomi",
		Brands:     []string{"xiaomi"},
		Components: []Component{{"com.example.security", "com.example.security.Autostart"}},
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, reg.Len())

	m, ok = reg.Lookup("xiaomi")
	require.True(t, ok)
	assert.Equal(t, "com.example.security", m.Components[0].Package)

	_, ok = reg.Lookup("redmi")
	assert.False(t, ok, "replaced entry no longer lists redmi")

	// Default table is untouched by mutations of another registry.
	_, ok = Default().Lookup("redmi")
	assert.True(t, ok)
}

func TestRegistryReturnsCopies(t *testing.T) {
	const class = "com.miui.permcenter.autostart.AutoStartManagementActivity"

	listed := Default().Manufacturers()
	listed[0].Components[0].Class = "changed"
	listed[0].Brands[0] = "changed"

	found, ok := Default().Lookup("xiaomi")
	require.True(t, ok)
	found.Components[0].Class = "changed"

	byName, ok := Default().ByName("Xiaomi")
	require.True(t, ok)
	byName.Brands[0] = "changed"

	m, ok := Default().Lookup("xiaomi")
	require.True(t, ok)
	assert.Equal(t, class, m.Components[0].Class)
	assert.Equal(t, "xiaomi", m.Brands[0])

	components := []Component{{"com.transsion.phonemaster", "com.cyin.himgr.autostart.AutoStartActivity"}}
	reg, err := NewRegistry(Manufacturer{Name: "Tecno", Brands: []string{"tecno"}, Components: components})
	require.NoError(t, err)
	components[0].Class = "changed"

	m, ok = reg.Lookup("tecno")
	require.True(t, ok)
	assert.Equal(t, "com.cyin.himgr.autostart.AutoStartActivity", m.Components[0].Class)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Manufacturer
	}{
		{"no name", Manufacturer{Brands: []string{"x"}, Components: []Component{{"a", "b"}}}},
		{"no brands", Manufacturer{Name: "X", Components: []Component{{"a", "b"}}}},
		{"blank brand", Manufacturer{Name: "X", Brands: []string{" "}, Components: []Component{{"a", "b"}}}},
		{"nothing to open", Manufacturer{Name: "X", Brands: []string{"x"}}},
		{"half component", Manufacturer{Name: "X", Brands: []string{"x"}, Components: []Component{{"a", ""}}}},
		{"action without action", Manufacturer{Name: "X", Brands: []string{"x"}, Fallback: Fallback{Kind: FallbackAction}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.m.Validate(), ErrInvalidManufacturer)
		})
	}

	ok := Manufacturer{Name: "X", Brands: []string{"x"}, Fallback: Fallback{Kind: FallbackAppDetails}}
	assert.NoError(t, ok.Validate())
}

func TestParseFallbackKind(t *testing.T) {
	tests := []struct {
		in      string
		want    FallbackKind
		wantErr bool
	}{
		{"", FallbackNone, false},
		{"none", FallbackNone, false},
		{"App-Details", FallbackAppDetails, false},
		{"action", FallbackAction, false},
		{"reboot", FallbackNone, true},
	}
	for _, tt := range tests {
		got, err := ParseFallbackKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestComponentString(t *testing.T) {
	c := Component{"com.meizu.safe", "com.meizu.safe.permission.SmartBGActivity"}
	assert.Equal(t, "com.meizu.safe/com.meizu.safe.permission.SmartBGActivity", c.String())
}
