package types

// DefaultIcon is used when neither hooks nor workspaces supply an icon
const DefaultIcon = "grid"

// Tile is a single launcher entry rendered on the home screen
type Tile struct {
	Name  string  `json:"name"`
	Title string  `json:"title"`
	Icon  string  `json:"icon"`
	Logo  *string `json:"logo"` // null when no verified logo exists
	Route string  `json:"route"`
}

// HasLogo reports whether the tile carries a logo URL
func (t Tile) HasLogo() bool {
	return t.Logo != nil && *t.Logo != ""
}

// AppsScreenEntry is the structured form of an app's add_to_apps_screen hook
type AppsScreenEntry struct {
	Route string `json:"route"`
	Logo  string `json:"logo,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// HookSet holds the hook values the launcher reads for one app
type HookSet struct {
	AppTitle   string           `json:"app_title"`
	AppsScreen *AppsScreenEntry `json:"add_to_apps_screen,omitempty"`

	// IgnoredEntries counts add_to_apps_screen entries after the first.
	// Only the first entry is ever used.
	IgnoredEntries int `json:"-"`
}

// Workspace is a module-scoped dashboard record
type Workspace struct {
	Name   string `json:"name" yaml:"name"`
	Title  string `json:"title" yaml:"title"`
	Icon   string `json:"icon" yaml:"icon"`
	Module string `json:"module" yaml:"module"`
	Public bool   `json:"public" yaml:"public"`
}

// Page is a standalone desk page record
type Page struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
}
