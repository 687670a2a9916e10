package paths

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// Bench-relative locations
const (
	Sites         = "sites"
	Apps          = "apps"
	InstalledApps = "sites/apps.txt"
	Database      = "sites/launcher.db"
)

// App-relative locations
const (
	HooksGlob = "hooks.{yaml,yml,toml}"
	Modules   = "modules.txt"
	Public    = "public"
	Images    = "public/images"
)

// AssetPrefix is the URL prefix under which app public directories are served
const AssetPrefix = "/assets/"

// App returns paths for an installed application
type App struct {
	ID string
}

// AppPath returns paths for a specific application
func AppPath(appID string) App {
	return App{ID: appID}
}

// Root returns the app path relative to the bench: apps/<id>/<id>
func (a App) Root() string {
	return filepath.Join(Apps, a.ID, a.ID)
}

// PublicDir returns the app's static asset directory relative to the bench
func (a App) PublicDir() string {
	return filepath.Join(a.Root(), Public)
}

// ModulesFile returns the app's modules.txt relative to the bench
func (a App) ModulesFile() string {
	return filepath.Join(a.Root(), Modules)
}

// AssetURL maps a path relative to the public directory to its served URL
func (a App) AssetURL(rel string) string {
	return AssetPrefix + a.ID + "/" + strings.TrimPrefix(filepath.ToSlash(rel), "/")
}

// AssetRel strips /assets/<id>/ from url. ok is false when url belongs elsewhere,
// names the public directory itself, or is not already a clean relative path
// (dot segments, empty segments, trailing slash).
func (a App) AssetRel(url string) (string, bool) {
	prefix := AssetPrefix + a.ID + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(url, prefix)
	if !fs.ValidPath(rel) || rel == "." || path.Clean(rel) != rel {
		return "", false
	}
	return rel, true
}

// ValidateAppID checks if an app ID is valid for path construction
func ValidateAppID(appID string) error {
	if appID == "" {
		return fmt.Errorf("app ID cannot be empty")
	}
	if filepath.IsAbs(appID) {
		return fmt.Errorf("app ID cannot be an absolute path")
	}
	if strings.ContainsAny(appID, `/\`) || appID == "." || appID == ".." {
		return fmt.Errorf("app ID contains invalid path components")
	}
	if filepath.Clean(appID) != appID {
		return fmt.Errorf("app ID contains invalid path components")
	}
	return nil
}
