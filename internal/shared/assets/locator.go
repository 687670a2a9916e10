// Package assets locates files under an installed app's public directory.
package assets

import (
	"fmt"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/GriffinCanCode/launcher/internal/shared/paths"
)

// Locator probes app public directories on a bench-rooted filesystem
type Locator struct {
	fs afero.Fs
}

// NewLocator creates a locator over fs, whose root is the bench directory
func NewLocator(fs afero.Fs) *Locator {
	return &Locator{fs: fs}
}

// NewOsLocator creates a locator over the bench directory on disk
func NewOsLocator(benchDir string) *Locator {
	return NewLocator(afero.NewBasePathFs(afero.NewOsFs(), benchDir))
}

// Locate returns the asset URL of rel when it is a regular file under the
// app's public directory. Any error counts as not found.
func (l *Locator) Locate(app, rel string) (string, bool) {
	public, ok := l.publicFs(app)
	if !ok {
		return "", false
	}

	info, err := public.Stat(filepath.FromSlash(rel))
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	return paths.AppPath(app).AssetURL(rel), true
}

// IsDir reports whether rel is a directory under the app's public directory
func (l *Locator) IsDir(app, rel string) bool {
	public, ok := l.publicFs(app)
	if !ok {
		return false
	}

	isDir, err := afero.IsDir(public, filepath.FromSlash(rel))
	return err == nil && isDir
}

// ContentType sniffs the media type of a file under the app's public directory
func (l *Locator) ContentType(app, rel string) (string, error) {
	public, ok := l.publicFs(app)
	if !ok {
		return "", fmt.Errorf("invalid app identifier %q", app)
	}

	f, err := public.Open(filepath.FromSlash(rel))
	if err != nil {
		return "", err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("mime detection failed: %w", err)
	}
	return mtype.String(), nil
}

// publicFs confines lookups to the app's public directory
func (l *Locator) publicFs(app string) (afero.Fs, bool) {
	if err := paths.ValidateAppID(app); err != nil {
		return nil, false
	}
	return afero.NewBasePathFs(l.fs, paths.AppPath(app).PublicDir()), true
}
