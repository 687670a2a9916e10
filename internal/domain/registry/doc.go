// Package registry reads the host platform's app registry from a bench directory.
//
// The registry answers three questions for the launcher: which apps are
// installed (sites/apps.txt, in install order), what hooks an app declares
// (hooks.yaml, hooks.yml or hooks.toml in the app path) and which modules it
// owns (modules.txt).
//
// Hook files are decoded into a raw mapping and then narrowed to the launcher's
// HookSet. Hook values of the wrong shape are dropped, not reported:
//
//	app_title: [CRM]
//	add_to_apps_screen:
//	  - route: /crm
//	    logo: /assets/crm/images/logo.svg
//	    icon: users
//
// Only the first add_to_apps_screen entry is used.
//
// Example Usage:
//
//	bench, err := registry.Open("/srv/bench")
//	apps, err := bench.InstalledApps(ctx)
//	hooks, err := bench.Hooks(ctx, "crm")
//	modules, err := bench.Modules(ctx, "crm")
package registry
