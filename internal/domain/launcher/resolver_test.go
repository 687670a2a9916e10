package launcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/launcher/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/launcher/internal/shared/assets"
	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

type fakeRegistry struct {
	apps       []string
	appsErr    error
	hooks      map[string]*types.HookSet
	hookErrs   map[string]error
	modules    map[string][]string
	moduleErrs map[string]error
}

func (f *fakeRegistry) InstalledApps(ctx context.Context) ([]string, error) {
	return f.apps, f.appsErr
}

func (f *fakeRegistry) Hooks(ctx context.Context, app string) (*types.HookSet, error) {
	if err := f.hookErrs[app]; err != nil {
		return nil, err
	}
	if h, ok := f.hooks[app]; ok {
		return h, nil
	}
	return &types.HookSet{AppTitle: app}, nil
}

func (f *fakeRegistry) Modules(ctx context.Context, app string) ([]string, error) {
	if err := f.moduleErrs[app]; err != nil {
		return nil, err
	}
	return f.modules[app], nil
}

type fakeRecords struct {
	workspaces []types.Workspace
	pages      map[string]bool
	wsErr      error
	pageErr    error
	wsQueries  int
	pageChecks []string
}

// PublicWorkspaces filters like the store does; fixtures are given in title order
func (f *fakeRecords) PublicWorkspaces(ctx context.Context, modules []string) ([]types.Workspace, error) {
	f.wsQueries++
	if f.wsErr != nil {
		return nil, f.wsErr
	}
	var out []types.Workspace
	for _, ws := range f.workspaces {
		if !ws.Public {
			continue
		}
		for _, m := range modules {
			if ws.Module == m {
				out = append(out, ws)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRecords) PageExists(ctx context.Context, name string) (bool, error) {
	f.pageChecks = append(f.pageChecks, name)
	if f.pageErr != nil {
		return false, f.pageErr
	}
	return f.pages[name], nil
}

type fakeRecorder struct {
	mu     sync.Mutex
	tiers  map[string]int
	logos  map[string]int
	tiles  int
	called int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{tiers: map[string]int{}, logos: map[string]int{}}
}

func (f *fakeRecorder) RecordTier(tier string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tiers[tier]++
}

func (f *fakeRecorder) RecordLogo(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logos[source]++
}

func (f *fakeRecorder) RecordResolve(tiles int, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tiles = tiles
	f.called++
}

func writeAsset(t *testing.T, fs afero.Fs, app, rel string) {
	t.Helper()
	path := "apps/" + app + "/" + app + "/public/" + rel
	require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0644))
}

func strptr(s string) *string {
	return &s
}

func newTestResolver(reg *fakeRegistry, rec *fakeRecords, fs afero.Fs) *Resolver {
	return NewResolver(reg, rec, assets.NewLocator(fs), zap.NewNop())
}

// appTiles strips the trailing static tiles
func appTiles(t *testing.T, tiles []types.Tile) []types.Tile {
	t.Helper()
	require.GreaterOrEqual(t, len(tiles), 2)
	return tiles[:len(tiles)-2]
}

func TestResolveHookTier(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAsset(t, fs, "crm", "logo.svg")

	reg := &fakeRegistry{
		apps: []string{"frappe", "crm"},
		hooks: map[string]*types.HookSet{
			"crm": {
				AppTitle: "CRM",
				AppsScreen: &types.AppsScreenEntry{
					Route: "/crm",
					Logo:  "/assets/crm/logo.svg",
				},
			},
		},
	}
	rec := &fakeRecords{}

	tiles := newTestResolver(reg, rec, fs).Resolve(context.Background())

	require.Len(t, tiles, 3)
	assert.Equal(t, types.Tile{
		Name:  "crm",
		Title: "CRM",
		Icon:  "grid",
		Logo:  strptr("/assets/crm/logo.svg"),
		Route: "/crm",
	}, tiles[0])
	assert.Equal(t, "admin", tiles[1].Name)
	assert.Equal(t, "advanced", tiles[2].Name)

	// Lower tiers are never consulted once the hook supplies a route
	assert.Zero(t, rec.wsQueries)
	assert.Empty(t, rec.pageChecks)
}

func TestResolveHookIconKept(t *testing.T) {
	reg := &fakeRegistry{
		apps: []string{"helpdesk"},
		hooks: map[string]*types.HookSet{
			"helpdesk": {
				AppTitle:   "Helpdesk",
				AppsScreen: &types.AppsScreenEntry{Route: "/helpdesk", Icon: "support"},
			},
		},
	}

	tiles := appTiles(t, newTestResolver(reg, &fakeRecords{}, afero.NewMemMapFs()).Resolve(context.Background()))

	require.Len(t, tiles, 1)
	assert.Equal(t, "support", tiles[0].Icon)
}

func TestResolveWorkspaceTier(t *testing.T) {
	reg := &fakeRegistry{
		apps:    []string{"billing"},
		modules: map[string][]string{"billing": {"Billing"}},
	}
	rec := &fakeRecords{
		workspaces: []types.Workspace{
			{Name: "Billing Home", Title: "Billing Home", Icon: "money", Module: "Billing", Public: true},
		},
	}

	tiles := newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background())

	require.Len(t, tiles, 3)
	assert.Equal(t, types.Tile{
		Name:  "billing",
		Title: "billing",
		Icon:  "money",
		Logo:  nil,
		Route: "/app/billing-home",
	}, tiles[0])
	assert.Empty(t, rec.pageChecks)
}

func TestResolveWorkspaceTierUsesFirstByTitle(t *testing.T) {
	reg := &fakeRegistry{
		apps:    []string{"sales"},
		modules: map[string][]string{"sales": {"Selling", "CRM"}},
	}
	rec := &fakeRecords{
		workspaces: []types.Workspace{
			{Name: "Private", Title: "Aardvark", Icon: "lock", Module: "Selling", Public: false},
			{Name: "Sales Hub", Title: "Hub", Icon: "", Module: "Selling", Public: true},
			{Name: "Leads", Title: "Leads", Icon: "users", Module: "CRM", Public: true},
		},
	}

	tiles := appTiles(t, newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background()))

	require.Len(t, tiles, 1)
	assert.Equal(t, "/app/sales-hub", tiles[0].Route)
	// An empty workspace icon leaves the default in place
	assert.Equal(t, types.DefaultIcon, tiles[0].Icon)
}

func TestResolveWorkspaceOverridesHookIcon(t *testing.T) {
	reg := &fakeRegistry{
		apps: []string{"stock"},
		hooks: map[string]*types.HookSet{
			"stock": {AppTitle: "Stock", AppsScreen: &types.AppsScreenEntry{Icon: "box"}},
		},
		modules: map[string][]string{"stock": {"Stock"}},
	}
	rec := &fakeRecords{
		workspaces: []types.Workspace{
			{Name: "Stock", Title: "Stock", Icon: "warehouse", Module: "Stock", Public: true},
		},
	}

	tiles := appTiles(t, newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background()))

	require.Len(t, tiles, 1)
	assert.Equal(t, "/app/stock", tiles[0].Route)
	assert.Equal(t, "warehouse", tiles[0].Icon)
	assert.Equal(t, "Stock", tiles[0].Title)
}

func TestResolvePageTier(t *testing.T) {
	reg := &fakeRegistry{
		apps:    []string{"my_app"},
		modules: map[string][]string{"my_app": {"My App"}},
	}
	rec := &fakeRecords{pages: map[string]bool{"my-app": true}}

	tiles := appTiles(t, newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background()))

	require.Len(t, tiles, 1)
	assert.Equal(t, "/app/my-app", tiles[0].Route)
	assert.Equal(t, types.DefaultIcon, tiles[0].Icon)
	assert.Equal(t, []string{"my-app"}, rec.pageChecks)
}

func TestResolveSkipsWorkspaceQueryWithoutModules(t *testing.T) {
	reg := &fakeRegistry{apps: []string{"lonely"}}
	rec := &fakeRecords{}

	tiles := newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background())

	assert.Len(t, tiles, 2)
	assert.Zero(t, rec.wsQueries)
	assert.Equal(t, []string{"lonely"}, rec.pageChecks)
}

func TestResolveDropsAppsWithoutRoute(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAsset(t, fs, "ghost", "images/logo.png")

	reg := &fakeRegistry{
		apps: []string{"ghost"},
		hooks: map[string]*types.HookSet{
			"ghost": {AppTitle: "Ghost", AppsScreen: &types.AppsScreenEntry{Logo: "/assets/ghost/images/logo.png"}},
		},
	}
	recorder := newFakeRecorder()

	tiles := newTestResolver(reg, &fakeRecords{}, fs).WithMetrics(recorder).Resolve(context.Background())

	require.Len(t, tiles, 2)
	assert.Equal(t, StaticTiles(), tiles)
	assert.Equal(t, 1, recorder.tiers[TierDropped])
	// Dropped apps never reach logo resolution
	assert.Empty(t, recorder.logos)
}

func TestResolveSkipsHiddenApps(t *testing.T) {
	reg := &fakeRegistry{
		apps: []string{"frappe", "home_page"},
		hooks: map[string]*types.HookSet{
			"frappe":    {AppTitle: "Frappe", AppsScreen: &types.AppsScreenEntry{Route: "/desk"}},
			"home_page": {AppTitle: "Home", AppsScreen: &types.AppsScreenEntry{Route: "/home"}},
		},
	}

	tiles := newTestResolver(reg, &fakeRecords{}, afero.NewMemMapFs()).Resolve(context.Background())

	assert.Equal(t, StaticTiles(), tiles)
}

func TestResolveKeepsInstallOrder(t *testing.T) {
	reg := &fakeRegistry{
		apps: []string{"zeta", "alpha", "mid"},
		hooks: map[string]*types.HookSet{
			"zeta":  {AppTitle: "Zeta", AppsScreen: &types.AppsScreenEntry{Route: "/zeta"}},
			"alpha": {AppTitle: "Alpha", AppsScreen: &types.AppsScreenEntry{Route: "/alpha"}},
			"mid":   {AppTitle: "Mid", AppsScreen: &types.AppsScreenEntry{Route: "/mid"}},
		},
	}

	tiles := newTestResolver(reg, &fakeRecords{}, afero.NewMemMapFs()).Resolve(context.Background())

	var names []string
	for _, tile := range tiles {
		names = append(names, tile.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid", "admin", "advanced"}, names)
}

func TestResolveLogo(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		files    []string
		dirs     []string
		want     *string
		source   string
	}{
		{
			name:     "declared logo exists",
			declared: "/assets/crm/img/brand.png",
			files:    []string{"img/brand.png", "images/logo.png"},
			want:     strptr("/assets/crm/img/brand.png"),
			source:   LogoHook,
		},
		{
			name:     "declared logo missing falls back to search",
			declared: "/assets/crm/missing.png",
			files:    []string{"images/icon.svg"},
			want:     strptr("/assets/crm/images/icon.svg"),
			source:   LogoSearch,
		},
		{
			name:     "declared logo of another app is discarded",
			declared: "/assets/other/logo.png",
			files:    []string{"logo.png"},
			want:     nil,
			source:   LogoNone,
		},
		{
			name:     "declared logo escaping public is discarded",
			declared: "/assets/crm/../../hooks.yaml",
			files:    []string{"hooks.yaml"},
			want:     nil,
			source:   LogoNone,
		},
		{
			name:     "declared logo climbing to a sibling is discarded",
			declared: "/assets/crm/../billing/logo.png",
			files:    []string{"billing/logo.png"},
			want:     nil,
			source:   LogoNone,
		},
		{
			name:     "declared logo with dot segments falls back to search",
			declared: "/assets/crm/img/../images/logo.svg",
			files:    []string{"images/logo.svg"},
			want:     strptr("/assets/crm/images/logo.svg"),
			source:   LogoSearch,
		},
		{
			name:     "declared logo naming a directory is discarded",
			declared: "/assets/crm/images",
			dirs:     []string{"images"},
			want:     nil,
			source:   LogoNone,
		},
		{
			name:   "search order prefers logo.png",
			files:  []string{"images/icon.png", "images/logo.svg", "images/logo.png"},
			want:   strptr("/assets/crm/images/logo.png"),
			source: LogoSearch,
		},
		{
			name:   "search order prefers logo.jpg over icon files",
			files:  []string{"images/icon.png", "images/icon.svg", "images/logo.jpg"},
			want:   strptr("/assets/crm/images/logo.jpg"),
			source: LogoSearch,
		},
		{
			name:   "search ignores unknown names",
			files:  []string{"images/brand.png", "logo.png"},
			want:   nil,
			source: LogoNone,
		},
		{
			name:   "no public directory",
			want:   nil,
			source: LogoNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, f := range tt.files {
				writeAsset(t, fs, "crm", f)
			}
			for _, d := range tt.dirs {
				require.NoError(t, fs.MkdirAll("apps/crm/crm/public/"+d, 0755))
			}
			// A hooks file beside public must never be reachable as a logo
			require.NoError(t, afero.WriteFile(fs, "apps/crm/crm/hooks.yaml", []byte("x"), 0644))

			reg := &fakeRegistry{
				apps: []string{"crm"},
				hooks: map[string]*types.HookSet{
					"crm": {AppTitle: "CRM", AppsScreen: &types.AppsScreenEntry{Route: "/crm", Logo: tt.declared}},
				},
			}
			recorder := newFakeRecorder()

			tiles := appTiles(t, newTestResolver(reg, &fakeRecords{}, fs).WithMetrics(recorder).Resolve(context.Background()))

			require.Len(t, tiles, 1)
			assert.Equal(t, tt.want, tiles[0].Logo)
			assert.Equal(t, 1, recorder.logos[tt.source])
		})
	}
}

func TestResolveAbsorbsHostErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("installed apps failure yields static tiles", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		reg := &fakeRegistry{appsErr: boom}

		tiles := NewResolver(reg, &fakeRecords{}, assets.NewLocator(afero.NewMemMapFs()), zap.New(core)).
			Resolve(context.Background())

		assert.Equal(t, StaticTiles(), tiles)
		assert.Equal(t, 1, logs.FilterMessage("Failed to list installed apps").Len())
	})

	t.Run("hook failure falls through to lower tiers", func(t *testing.T) {
		reg := &fakeRegistry{
			apps:     []string{"broken"},
			hookErrs: map[string]error{"broken": boom},
		}
		rec := &fakeRecords{pages: map[string]bool{"broken": true}}

		tiles := appTiles(t, newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background()))

		require.Len(t, tiles, 1)
		assert.Equal(t, "broken", tiles[0].Title)
		assert.Equal(t, "/app/broken", tiles[0].Route)
	})

	t.Run("workspace failure falls through to page tier", func(t *testing.T) {
		reg := &fakeRegistry{
			apps:    []string{"erp"},
			modules: map[string][]string{"erp": {"Accounts"}},
		}
		rec := &fakeRecords{wsErr: boom, pages: map[string]bool{"erp": true}}

		tiles := appTiles(t, newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background()))

		require.Len(t, tiles, 1)
		assert.Equal(t, "/app/erp", tiles[0].Route)
	})

	t.Run("modules failure falls through to page tier", func(t *testing.T) {
		reg := &fakeRegistry{
			apps:       []string{"erp"},
			moduleErrs: map[string]error{"erp": boom},
		}
		rec := &fakeRecords{pages: map[string]bool{"erp": true}}

		tiles := appTiles(t, newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background()))

		require.Len(t, tiles, 1)
		assert.Zero(t, rec.wsQueries)
	})

	t.Run("page failure drops the app", func(t *testing.T) {
		reg := &fakeRegistry{apps: []string{"erp"}}
		rec := &fakeRecords{pageErr: boom}

		tiles := newTestResolver(reg, rec, afero.NewMemMapFs()).Resolve(context.Background())

		assert.Equal(t, StaticTiles(), tiles)
	})
}

func TestResolveInvariants(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAsset(t, fs, "crm", "logo.svg")
	writeAsset(t, fs, "billing", "images/icon.png")

	reg := &fakeRegistry{
		apps: []string{"crm", "billing", "empty", "my_app"},
		hooks: map[string]*types.HookSet{
			"crm": {AppTitle: "CRM", AppsScreen: &types.AppsScreenEntry{Route: "/crm", Logo: "/assets/crm/logo.svg"}},
		},
		modules: map[string][]string{"billing": {"Billing"}},
	}
	rec := &fakeRecords{
		workspaces: []types.Workspace{{Name: "Billing", Title: "Billing", Module: "Billing", Public: true}},
		pages:      map[string]bool{"my-app": true},
	}
	recorder := newFakeRecorder()

	tiles := newTestResolver(reg, rec, fs).WithMetrics(recorder).Resolve(context.Background())

	require.Len(t, tiles, 5)
	for _, tile := range tiles {
		assert.NotEmpty(t, tile.Route, tile.Name)
		assert.NotEmpty(t, tile.Icon, tile.Name)
		if tile.Logo != nil {
			assert.NotEmpty(t, *tile.Logo, tile.Name)
		}
	}
	assert.Equal(t, "admin", tiles[3].Name)
	assert.Equal(t, "/app/admin", tiles[3].Route)
	assert.Equal(t, "advanced", tiles[4].Name)
	assert.Equal(t, "/app/build", tiles[4].Route)

	assert.Equal(t, map[string]int{TierHook: 1, TierWorkspace: 1, TierPage: 1, TierDropped: 1}, recorder.tiers)
	assert.Equal(t, map[string]int{LogoHook: 1, LogoSearch: 1, LogoNone: 1}, recorder.logos)
	assert.Equal(t, 1, recorder.called)
	assert.Equal(t, 5, recorder.tiles)
}

func TestResolveIsStateless(t *testing.T) {
	fs := afero.NewMemMapFs()
	reg := &fakeRegistry{
		apps:  []string{"crm"},
		hooks: map[string]*types.HookSet{"crm": {AppTitle: "CRM", AppsScreen: &types.AppsScreenEntry{Route: "/crm"}}},
	}
	r := newTestResolver(reg, &fakeRecords{}, fs)

	first := r.Resolve(context.Background())
	assert.Nil(t, first[0].Logo)

	// A logo added between calls shows up without any invalidation
	writeAsset(t, fs, "crm", "images/logo.svg")
	second := r.Resolve(context.Background())
	assert.Equal(t, strptr("/assets/crm/images/logo.svg"), second[0].Logo)
}

func TestResolveWithTracer(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tracer := tracing.New("launcher-test", zap.New(core))

	reg := &fakeRegistry{apps: []string{}}
	tiles := newTestResolver(reg, &fakeRecords{}, afero.NewMemMapFs()).WithTracer(tracer).Resolve(context.Background())
	tracer.Close()

	assert.Len(t, tiles, 2)
	assert.Equal(t, 1, logs.FilterField(zap.String("operation", "launcher.resolve")).Len())
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sales Hub", "sales-hub"},
		{"Billing", "billing"},
		{"Multi  Space", "multi--space"},
		{"already-slugged", "already-slugged"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestStaticTilesAreFresh(t *testing.T) {
	a := StaticTiles()
	*a[0].Logo = "changed"
	a[1].Route = "changed"

	b := StaticTiles()
	assert.Equal(t, "/assets/home_page/images/admin.svg", *b[0].Logo)
	assert.Equal(t, "/app/build", b[1].Route)
}

func TestResolveFlagsNonImageLogos(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "apps/crm/crm/public/images/logo.png", []byte("just text\n"), 0644))

	core, logs := observer.New(zap.DebugLevel)
	reg := &fakeRegistry{
		apps:  []string{"crm"},
		hooks: map[string]*types.HookSet{"crm": {AppTitle: "CRM", AppsScreen: &types.AppsScreenEntry{Route: "/crm"}}},
	}

	tiles := NewResolver(reg, &fakeRecords{}, assets.NewLocator(fs), zap.New(core)).Resolve(context.Background())

	// The logo is still used; the mismatch is only logged
	assert.Equal(t, strptr("/assets/crm/images/logo.png"), tiles[0].Logo)
	entries := logs.FilterMessage("Logo does not look like an image").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "images/logo.png", entries[0].ContextMap()["logo"])
}
