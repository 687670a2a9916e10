package launcher

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/launcher/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/launcher/internal/shared/paths"
	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

// Registry is the host's read-only app registry
type Registry interface {
	InstalledApps(ctx context.Context) ([]string, error)
	Hooks(ctx context.Context, app string) (*types.HookSet, error)
	Modules(ctx context.Context, app string) ([]string, error)
}

// Records is the host's read-only Workspace and Page data store
type Records interface {
	// PublicWorkspaces returns public workspaces whose module is in modules, ordered by title
	PublicWorkspaces(ctx context.Context, modules []string) ([]types.Workspace, error)
	PageExists(ctx context.Context, name string) (bool, error)
}

// AssetLocator probes files under an app's public directory
type AssetLocator interface {
	// Locate returns the asset URL of rel if it is a file under the app's public directory
	Locate(app, rel string) (string, bool)
	IsDir(app, rel string) bool
}

// contentTyper is implemented by locators that can sniff asset media types
type contentTyper interface {
	ContentType(app, rel string) (string, error)
}

// Recorder receives resolution statistics
type Recorder interface {
	RecordTier(tier string)
	RecordLogo(source string)
	RecordResolve(tiles int, duration time.Duration)
}

// Resolution tiers and logo sources reported to the Recorder
const (
	TierHook      = "hook"
	TierWorkspace = "workspace"
	TierPage      = "page"
	TierDropped   = "dropped"

	LogoHook   = "hook"
	LogoSearch = "search"
	LogoNone   = "none"
)

// LogoFilenames are searched for, in order, under public/images
var LogoFilenames = []string{"logo.png", "logo.svg", "logo.jpg", "icon.png", "icon.svg"}

// hiddenApps never get a tile
var hiddenApps = map[string]struct{}{
	"frappe":    {},
	"home_page": {},
}

// Resolver builds the launcher tile list
type Resolver struct {
	registry Registry
	records  Records
	assets   AssetLocator
	logger   *zap.Logger
	metrics  Recorder
	tracer   *tracing.Tracer
}

// NewResolver creates a new resolver over the host's collaborators
func NewResolver(registry Registry, records Records, assets AssetLocator, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		registry: registry,
		records:  records,
		assets:   assets,
		logger:   logger,
	}
}

// WithMetrics attaches a metrics recorder
func (r *Resolver) WithMetrics(metrics Recorder) *Resolver {
	r.metrics = metrics
	return r
}

// WithTracer attaches a tracer
func (r *Resolver) WithTracer(tracer *tracing.Tracer) *Resolver {
	r.tracer = tracer
	return r
}

// Resolve returns one tile per displayable installed app, in install order,
// followed by the static tiles. It never fails: host errors only remove
// apps or logos from the result.
func (r *Resolver) Resolve(ctx context.Context) []types.Tile {
	start := time.Now()
	if r.tracer != nil {
		var span *tracing.Span
		span, ctx = r.tracer.StartSpan(ctx, "launcher.resolve")
		defer func() {
			span.Finish()
			r.tracer.Submit(span)
		}()
	}

	var tiles []types.Tile

	apps, err := r.registry.InstalledApps(ctx)
	if err != nil {
		r.logger.Error("Failed to list installed apps", zap.Error(err))
	}

	for _, app := range apps {
		if _, hidden := hiddenApps[app]; hidden {
			continue
		}
		if tile, ok := r.resolveApp(ctx, app); ok {
			tiles = append(tiles, tile)
		}
	}

	tiles = append(tiles, StaticTiles()...)

	if r.metrics != nil {
		r.metrics.RecordResolve(len(tiles), time.Since(start))
	}
	r.logger.Debug("Resolved launcher tiles",
		zap.Int("installed", len(apps)),
		zap.Int("tiles", len(tiles)),
	)
	return tiles
}

// resolveApp runs the hook, workspace and page tiers in order
func (r *Resolver) resolveApp(ctx context.Context, app string) (types.Tile, bool) {
	log := r.logger.With(zap.String("app", app))

	title := app
	icon := types.DefaultIcon
	var route, logo string

	hooks, err := r.registry.Hooks(ctx, app)
	if err != nil {
		log.Debug("Ignoring unreadable hooks", zap.Error(err))
		hooks = nil
	}

	tier := TierDropped
	if hooks != nil {
		if hooks.AppTitle != "" {
			title = hooks.AppTitle
		}
		if entry := hooks.AppsScreen; entry != nil {
			if hooks.IgnoredEntries > 0 {
				log.Debug("Using first add_to_apps_screen entry only",
					zap.Int("ignored", hooks.IgnoredEntries))
			}
			route = entry.Route
			logo = entry.Logo
			if entry.Icon != "" {
				icon = entry.Icon
			}
			if route != "" {
				tier = TierHook
			}
		}
	}

	if route == "" {
		if ws, ok := r.firstWorkspace(ctx, app); ok {
			if ws.Icon != "" {
				icon = ws.Icon
			}
			route = "/app/" + Slug(ws.Name)
			tier = TierWorkspace
		}
	}

	if route == "" {
		slug := strings.ReplaceAll(app, "_", "-")
		exists, err := r.records.PageExists(ctx, slug)
		if err != nil {
			log.Warn("Failed to check page", zap.String("page", slug), zap.Error(err))
		} else if exists {
			route = "/app/" + slug
			tier = TierPage
		}
	}

	r.recordTier(tier)
	if route == "" {
		log.Debug("Dropping app without a route")
		return types.Tile{}, false
	}

	tile := types.Tile{
		Name:  app,
		Title: title,
		Icon:  icon,
		Logo:  r.resolveLogo(app, logo),
		Route: route,
	}
	log.Debug("Resolved tile",
		zap.String("tier", tier),
		zap.String("route", route),
		zap.Bool("logo", tile.HasLogo()),
	)
	return tile, true
}

// firstWorkspace returns the first public workspace, by title, of the app's modules
func (r *Resolver) firstWorkspace(ctx context.Context, app string) (types.Workspace, bool) {
	modules, err := r.registry.Modules(ctx, app)
	if err != nil {
		r.logger.Debug("Ignoring unreadable modules", zap.String("app", app), zap.Error(err))
		return types.Workspace{}, false
	}
	if len(modules) == 0 {
		return types.Workspace{}, false
	}

	workspaces, err := r.records.PublicWorkspaces(ctx, modules)
	if err != nil {
		r.logger.Warn("Failed to query workspaces", zap.String("app", app), zap.Error(err))
		return types.Workspace{}, false
	}
	if len(workspaces) == 0 {
		return types.Workspace{}, false
	}
	return workspaces[0], true
}

// resolveLogo keeps a declared logo only if its file exists, otherwise
// searches public/images for a conventional logo file.
func (r *Resolver) resolveLogo(app, declared string) *string {
	if declared != "" {
		if rel, ok := paths.AppPath(app).AssetRel(declared); ok {
			if _, found := r.assets.Locate(app, rel); found {
				r.recordLogo(LogoHook)
				r.checkLogoType(app, rel)
				return &declared
			}
		}
		r.logger.Debug("Discarding missing hook logo",
			zap.String("app", app),
			zap.String("logo", declared),
		)
	}

	if url, rel, ok := r.searchLogo(app); ok {
		r.recordLogo(LogoSearch)
		r.checkLogoType(app, rel)
		return &url
	}

	r.recordLogo(LogoNone)
	return nil
}

// searchLogo returns the URL and public-relative path of the first conventional logo file
func (r *Resolver) searchLogo(app string) (string, string, bool) {
	if !r.assets.IsDir(app, "images") {
		return "", "", false
	}
	for _, name := range LogoFilenames {
		rel := "images/" + name
		if url, ok := r.assets.Locate(app, rel); ok {
			return url, rel, true
		}
	}
	return "", "", false
}

// checkLogoType logs logos that do not sniff as images. It only runs with
// debug logging enabled and never changes the result.
func (r *Resolver) checkLogoType(app, rel string) {
	sniffer, ok := r.assets.(contentTyper)
	if !ok || !r.logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	mtype, err := sniffer.ContentType(app, rel)
	if err != nil || strings.HasPrefix(mtype, "image/") {
		return
	}
	r.logger.Debug("Logo does not look like an image",
		zap.String("app", app),
		zap.String("logo", rel),
		zap.String("content_type", mtype),
	)
}

func (r *Resolver) recordTier(tier string) {
	if r.metrics != nil {
		r.metrics.RecordTier(tier)
	}
}

func (r *Resolver) recordLogo(source string) {
	if r.metrics != nil {
		r.metrics.RecordLogo(source)
	}
}
