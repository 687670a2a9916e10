package registry

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/GriffinCanCode/launcher/internal/shared/paths"
	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

// ErrInvalidApp is returned for app identifiers that cannot name an app path
var ErrInvalidApp = errors.New("invalid app identifier")

// Bench reads installed apps, hooks and modules from a bench directory.
// Every call reads from the filesystem; nothing is cached.
type Bench struct {
	fs afero.Fs
}

// NewBench creates a registry over fs, whose root is the bench directory
func NewBench(fs afero.Fs) *Bench {
	return &Bench{fs: fs}
}

// Open creates a registry over the bench directory on disk
func Open(benchDir string) (*Bench, error) {
	info, err := os.Stat(benchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open bench: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bench path is not a directory: %s", benchDir)
	}
	return NewBench(afero.NewBasePathFs(afero.NewOsFs(), benchDir)), nil
}

// InstalledApps returns installed app identifiers in install order
func (b *Bench) InstalledApps(ctx context.Context) ([]string, error) {
	lines, err := b.readLines(paths.InstalledApps)
	if err != nil {
		return nil, fmt.Errorf("failed to read installed apps: %w", err)
	}

	seen := make(map[string]struct{}, len(lines))
	apps := make([]string, 0, len(lines))
	for _, app := range lines {
		if _, dup := seen[app]; dup {
			continue
		}
		seen[app] = struct{}{}
		apps = append(apps, app)
	}

	return apps, nil
}

// Hooks returns the app's hook set. An app without a hook file gets an
// empty hook set titled with its identifier.
func (b *Bench) Hooks(ctx context.Context, app string) (*types.HookSet, error) {
	if err := paths.ValidateAppID(app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}

	name, err := b.hookFile(app)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return DecodeHookSet(app, nil), nil
	}

	data, err := afero.ReadFile(b.fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read hooks for %s: %w", app, err)
	}

	raw, err := ParseHooks(name, data)
	if err != nil {
		return nil, err
	}

	return DecodeHookSet(app, raw), nil
}

// Modules returns the modules declared in the app's modules.txt
func (b *Bench) Modules(ctx context.Context, app string) ([]string, error) {
	if err := paths.ValidateAppID(app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}

	modules, err := b.readLines(paths.AppPath(app).ModulesFile())
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read modules for %s: %w", app, err)
	}
	return modules, nil
}

// hookFile picks the highest precedence hook file present in the app path
func (b *Bench) hookFile(app string) (string, error) {
	root := filepath.ToSlash(paths.AppPath(app).Root())
	matches, err := doublestar.Glob(afero.NewIOFS(b.fs), path.Join(root, paths.HooksGlob))
	if err != nil {
		return "", fmt.Errorf("failed to find hooks for %s: %w", app, err)
	}

	for _, ext := range hookFormats {
		for _, m := range matches {
			if path.Ext(m) == ext {
				return m, nil
			}
		}
	}
	return "", nil
}

// readLines returns non-empty, non-comment lines of a bench file
func (b *Bench) readLines(name string) ([]string, error) {
	data, err := afero.ReadFile(b.fs, name)
	if err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
