package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

// Hook names read by the launcher
const (
	HookAppTitle        = "app_title"
	HookAddToAppsScreen = "add_to_apps_screen"
)

// hookFormats lists hook file extensions by precedence
var hookFormats = []string{".yaml", ".yml", ".toml"}

// ParseHooks decodes a hook file into a raw hook mapping based on its extension
func ParseHooks(name string, data []byte) (map[string]interface{}, error) {
	raw := make(map[string]interface{})

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML hooks %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML hooks %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported hook file: %s", name)
	}

	return raw, nil
}

// DecodeHookSet extracts the launcher hooks from a raw hook mapping.
// Values of the wrong shape are ignored rather than reported.
func DecodeHookSet(app string, raw map[string]interface{}) *types.HookSet {
	hooks := &types.HookSet{AppTitle: app}

	if title, ok := firstString(raw[HookAppTitle]); ok && title != "" {
		hooks.AppTitle = title
	}

	// Only the first add_to_apps_screen entry is used, and only if it is a mapping
	if entries, ok := raw[HookAddToAppsScreen].([]interface{}); ok && len(entries) > 0 {
		if entry, ok := asMapping(entries[0]); ok {
			hooks.AppsScreen = &types.AppsScreenEntry{
				Route: stringField(entry, "route"),
				Logo:  stringField(entry, "logo"),
				Icon:  stringField(entry, "icon"),
			}
		}
		hooks.IgnoredEntries = len(entries) - 1
	}

	return hooks
}

// firstString accepts either a scalar string or a list whose first element is a string
func firstString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []interface{}:
		if len(val) == 0 {
			return "", false
		}
		s, ok := val[0].(string)
		return s, ok
	default:
		return "", false
	}
}

// asMapping normalizes the mapping types produced by the YAML and TOML decoders
func asMapping(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
