package records

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sites", "launcher.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenAppliesMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "launcher.db")

	store, err := Open(dbPath)
	require.NoError(t, err)

	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, migrations[len(migrations)-1].Version, store.SchemaVersion())
	require.NoError(t, store.Close())

	// Reopening is a no-op
	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, migrations[len(migrations)-1].Version, store.SchemaVersion())
	assert.NoError(t, store.Ping(context.Background()))
}

func TestPublicWorkspaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, ws := range []types.Workspace{
		{Name: "Stock", Title: "Stock", Icon: "box", Module: "Stock", Public: true},
		{Name: "Accounting", Title: "accounting", Icon: "money", Module: "Accounts", Public: true},
		{Name: "Payables", Title: "Payables", Icon: "", Module: "Accounts", Public: true},
		{Name: "Private", Title: "Aaa Private", Icon: "lock", Module: "Accounts", Public: false},
		{Name: "Projects", Title: "Projects", Icon: "project", Module: "Projects", Public: true},
	} {
		require.NoError(t, store.UpsertWorkspace(ctx, ws))
	}

	workspaces, err := store.PublicWorkspaces(ctx, []string{"Accounts", "Stock"})
	require.NoError(t, err)

	names := make([]string, len(workspaces))
	for i, ws := range workspaces {
		names[i] = ws.Name
		assert.True(t, ws.Public)
	}
	assert.Equal(t, []string{"Accounting", "Payables", "Stock"}, names)
	assert.Equal(t, "money", workspaces[0].Icon)
}

func TestPublicWorkspacesNoModules(t *testing.T) {
	store := newTestStore(t)

	workspaces, err := store.PublicWorkspaces(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, workspaces)
}

func TestUpsertWorkspaceReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertWorkspace(ctx, types.Workspace{Name: "CRM", Title: "CRM", Module: "CRM", Public: false}))
	require.NoError(t, store.UpsertWorkspace(ctx, types.Workspace{Name: "CRM", Title: "CRM", Icon: "users", Module: "CRM", Public: true}))

	workspaces, err := store.PublicWorkspaces(ctx, []string{"CRM"})
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "users", workspaces[0].Icon)

	assert.Error(t, store.UpsertWorkspace(ctx, types.Workspace{}))
}

func TestPageExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPage(ctx, types.Page{Name: "crm", Title: "CRM"}))

	exists, err := store.PageExists(ctx, "crm")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.PageExists(ctx, "billing")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, store.UpsertPage(ctx, types.Page{}))
}
