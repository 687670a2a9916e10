// Package records stores the host's Workspace and Page records.
//
// Records live in a SQLite database (pure Go driver) next to the site
// configuration. The schema is managed by embedded, forward-only migrations
// applied when the store is opened.
//
// Components:
//   - Store: Read queries used by the launcher, plus upserts for seeding
//   - Seeder: Loads YAML fixture files into the store
//   - Guarded: Circuit breaker in front of the read queries
//
// Fixture format:
//
//	workspaces:
//	  - name: Sales Hub
//	    title: Sales Hub
//	    icon: sell
//	    module: Selling
//	    public: true
//	pages:
//	  - name: crm
//	    title: CRM
//
// Example Usage:
//
//	store, err := records.Open("sites/launcher.db")
//	defer store.Close()
//	workspaces, err := store.PublicWorkspaces(ctx, []string{"Selling"})
//	exists, err := store.PageExists(ctx, "crm")
package records
