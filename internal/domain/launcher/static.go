package launcher

import "github.com/GriffinCanCode/launcher/internal/shared/types"

const (
	adminLogo    = "/assets/home_page/images/admin.svg"
	advancedLogo = "/assets/home_page/images/advanced.svg"
)

// StaticTiles returns the entries appended after every installed app.
// A fresh slice is built on each call so callers may modify it.
func StaticTiles() []types.Tile {
	admin := adminLogo
	advanced := advancedLogo

	return []types.Tile{
		{
			Name:  "admin",
			Title: "Admin",
			Icon:  "settings",
			Logo:  &admin,
			Route: "/app/admin",
		},
		{
			Name:  "advanced",
			Title: "Advanced",
			Icon:  "tool",
			Logo:  &advanced,
			Route: "/app/build",
		},
	}
}
