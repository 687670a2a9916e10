package records

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

// Store reads Workspace and Page records from a SQLite database
type Store struct {
	db      *sql.DB
	version int
}

// Open opens the database at dbPath and applies pending migrations
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	version, err := migrate(context.Background(), db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db, version: version}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks if the database is accessible
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SchemaVersion returns the schema version reached when the store was opened
func (s *Store) SchemaVersion() int {
	return s.version
}

// PublicWorkspaces returns public workspaces belonging to any of modules,
// ordered by title. No modules means no workspaces.
func (s *Store) PublicWorkspaces(ctx context.Context, modules []string) ([]types.Workspace, error) {
	if len(modules) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(modules)), ",")
	query := `SELECT name, title, icon, module, public FROM workspace
		WHERE public = 1 AND module IN (` + placeholders + `)
		ORDER BY title COLLATE NOCASE, name`

	args := make([]interface{}, len(modules))
	for i, m := range modules {
		args[i] = m
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []types.Workspace
	for rows.Next() {
		var ws types.Workspace
		if err := rows.Scan(&ws.Name, &ws.Title, &ws.Icon, &ws.Module, &ws.Public); err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

// PageExists reports whether a Page record named name exists
func (s *Store) PageExists(ctx context.Context, name string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM page WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking page %s: %w", name, err)
	}
	return exists == 1, nil
}

// UpsertWorkspace inserts or replaces a workspace record
func (s *Store) UpsertWorkspace(ctx context.Context, ws types.Workspace) error {
	if ws.Name == "" {
		return fmt.Errorf("workspace name is required")
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO workspace (name, title, icon, module, public)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title = excluded.title, icon = excluded.icon,
			module = excluded.module, public = excluded.public`,
		ws.Name, ws.Title, ws.Icon, ws.Module, ws.Public,
	)
	if err != nil {
		return fmt.Errorf("saving workspace %s: %w", ws.Name, err)
	}
	return nil
}

// UpsertPage inserts or replaces a page record
func (s *Store) UpsertPage(ctx context.Context, p types.Page) error {
	if p.Name == "" {
		return fmt.Errorf("page name is required")
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO page (name, title) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET title = excluded.title`,
		p.Name, p.Title,
	)
	if err != nil {
		return fmt.Errorf("saving page %s: %w", p.Name, err)
	}
	return nil
}
