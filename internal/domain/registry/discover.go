package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/spf13/afero"

	"github.com/GriffinCanCode/launcher/internal/shared/paths"
)

// DiscoverApps walks <benchDir>/apps for app paths (apps/<id>/<id>) and
// returns their identifiers sorted. Only the first two levels are visited.
func DiscoverApps(ctx context.Context, benchDir string) ([]string, error) {
	root := filepath.Join(benchDir, paths.Apps)

	var (
		mu   sync.Mutex
		apps []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if !d.IsDir() || p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) < 2 {
			return nil
		}
		if parts[0] == parts[1] {
			mu.Lock()
			apps = append(apps, parts[0])
			mu.Unlock()
		}
		return fastwalk.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan apps: %w", err)
	}

	sort.Strings(apps)
	return apps, nil
}

// Report describes mismatches between the installed app list and the bench
type Report struct {
	Installed   []string          `json:"installed"`
	Missing     []string          `json:"missing"`     // installed without an app path
	Uninstalled []string          `json:"uninstalled"` // app paths not listed as installed
	HookErrors  map[string]string `json:"hook_errors"`
}

// Healthy reports whether no problems were found
func (r Report) Healthy() bool {
	return len(r.Missing) == 0 && len(r.Uninstalled) == 0 && len(r.HookErrors) == 0
}

// Diagnose compares the installed app list with what is on disk and
// checks that every installed app's hooks parse.
func (b *Bench) Diagnose(ctx context.Context, discovered []string) (Report, error) {
	report := Report{HookErrors: map[string]string{}}

	installed, err := b.InstalledApps(ctx)
	if err != nil {
		return report, err
	}
	report.Installed = installed

	listed := make(map[string]struct{}, len(installed))
	for _, app := range installed {
		listed[app] = struct{}{}

		if err := paths.ValidateAppID(app); err != nil {
			report.HookErrors[app] = err.Error()
			continue
		}
		if ok, _ := afero.DirExists(b.fs, paths.AppPath(app).Root()); !ok {
			report.Missing = append(report.Missing, app)
			continue
		}
		if _, err := b.Hooks(ctx, app); err != nil {
			report.HookErrors[app] = err.Error()
		}
	}

	for _, app := range discovered {
		if _, ok := listed[app]; !ok {
			report.Uninstalled = append(report.Uninstalled, app)
		}
	}

	return report, nil
}
