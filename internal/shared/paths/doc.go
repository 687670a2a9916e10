// Package paths provides the bench directory layout.
//
// # Directory Structure
//
//	<bench>/
//	  ├── sites/
//	  │   ├── apps.txt        (installed apps, install order)
//	  │   └── launcher.db     (workspace and page records)
//	  └── apps/<app>/<app>/   (app path)
//	      ├── hooks.yaml      (or hooks.yml, hooks.toml)
//	      ├── modules.txt
//	      └── public/         (served at /assets/<app>/)
//	          └── images/
//
// # Usage
//
//	app := paths.AppPath("crm")
//	dir := app.PublicDir()                  // apps/crm/crm/public
//	url := app.AssetURL("images/logo.svg")  // /assets/crm/images/logo.svg
//	rel, ok := app.AssetRel(url)            // images/logo.svg, true
package paths
