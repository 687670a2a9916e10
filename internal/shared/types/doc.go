// Package types provides shared data structures for the launcher.
//
// Core Types:
//   - Tile: Launcher entry returned by get_apps
//   - HookSet, AppsScreenEntry: Hook values declared by an installed app
//   - Workspace, Page: Host records consulted during route resolution
//
// Example Usage:
//
//	logo := "/assets/crm/images/logo.svg"
//	tile := types.Tile{
//	    Name:  "crm",
//	    Title: "CRM",
//	    Icon:  types.DefaultIcon,
//	    Logo:  &logo,
//	    Route: "/app/crm",
//	}
package types
