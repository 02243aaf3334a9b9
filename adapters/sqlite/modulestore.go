package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackroad/terramod/domain/module"
	"github.com/blackroad/terramod/ports"
)

// ModuleStore implements ports.ModuleStore with SQLite. Variable, output,
// example, and tag lists are stored as JSON columns.
type ModuleStore struct {
	db *DB
}

// NewModuleStore creates a new SQLite module store.
func NewModuleStore(db *DB) *ModuleStore {
	return &ModuleStore{db: db}
}

const moduleColumns = `id, name, provider, resource_type, version,
	COALESCE(description, ''), template,
	COALESCE(variables, '[]'), COALESCE(outputs, '[]'),
	COALESCE(examples, '[]'), COALESCE(tags, '[]'),
	created_at, COALESCE(download_count, 0)`

// Create stores a new module.
func (s *ModuleStore) Create(ctx context.Context, m module.Module) error {
	variables, err := json.Marshal(m.Variables)
	if err != nil {
		return fmt.Errorf("encode variables: %w", err)
	}
	outputs, err := json.Marshal(m.Outputs)
	if err != nil {
		return fmt.Errorf("encode outputs: %w", err)
	}
	examples, err := json.Marshal(m.Examples)
	if err != nil {
		return fmt.Errorf("encode examples: %w", err)
	}
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.DB.ExecContext(ctx, `
		INSERT INTO modules (id, name, provider, resource_type, version, description,
							 template, variables, outputs, examples, tags,
							 created_at, download_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, string(m.Provider), m.ResourceType, m.Version, m.Description,
		m.Template, string(variables), string(outputs), string(examples), string(tags),
		m.CreatedAt.UTC(), m.DownloadCount)
	return err
}

// Get retrieves a module by ID or unique name.
func (s *ModuleStore) Get(ctx context.Context, idOrName string) (module.Module, error) {
	row := s.db.DB.QueryRowContext(ctx, `
		SELECT `+moduleColumns+`
		FROM modules WHERE id = ? OR name = ?
	`, idOrName, idOrName)

	m, err := scanModule(row)
	if err == sql.ErrNoRows {
		return module.Module{}, ports.ErrNotFound
	}
	return m, err
}

// List returns modules matching the filter, most downloaded first, then by name.
func (s *ModuleStore) List(ctx context.Context, f ports.ModuleFilter) ([]module.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE 1=1`
	var params []any
	if f.Provider != "" {
		query += " AND provider = ?"
		params = append(params, string(f.Provider))
	}
	if f.ResourceType != "" {
		query += " AND resource_type = ?"
		params = append(params, f.ResourceType)
	}
	query += " ORDER BY download_count DESC, name ASC"

	rows, err := s.db.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanModules(rows)
}

// Search matches the query case-insensitively against name, description,
// provider, resource type, and tags.
func (s *ModuleStore) Search(ctx context.Context, query string) ([]module.Module, error) {
	q := "%" + query + "%"
	rows, err := s.db.DB.QueryContext(ctx, `
		SELECT `+moduleColumns+`
		FROM modules
		WHERE name LIKE ? COLLATE NOCASE
		   OR description LIKE ? COLLATE NOCASE
		   OR provider LIKE ? COLLATE NOCASE
		   OR resource_type LIKE ? COLLATE NOCASE
		   OR tags LIKE ? COLLATE NOCASE
		ORDER BY download_count DESC, name ASC
	`, q, q, q, q, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanModules(rows)
}

// Delete removes a module by ID or name.
func (s *ModuleStore) Delete(ctx context.Context, idOrName string) error {
	res, err := s.db.DB.ExecContext(ctx,
		"DELETE FROM modules WHERE id = ? OR name = ?", idOrName, idOrName)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// IncrementDownloads bumps the usage counter by one.
func (s *ModuleStore) IncrementDownloads(ctx context.Context, id string) error {
	res, err := s.db.DB.ExecContext(ctx,
		"UPDATE modules SET download_count = download_count + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Count returns the number of stored modules.
func (s *ModuleStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM modules").Scan(&n)
	return n, err
}

// Stats aggregates registry statistics.
func (s *ModuleStore) Stats(ctx context.Context) (ports.Stats, error) {
	var st ports.Stats

	if err := s.db.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM modules").Scan(&st.TotalModules); err != nil {
		return ports.Stats{}, err
	}

	rows, err := s.db.DB.QueryContext(ctx, `
		SELECT provider, COUNT(*) AS cnt FROM modules
		GROUP BY provider ORDER BY cnt DESC, provider ASC
	`)
	if err != nil {
		return ports.Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc ports.ProviderCount
		var provider string
		if err := rows.Scan(&provider, &pc.Count); err != nil {
			return ports.Stats{}, err
		}
		pc.Provider = module.Provider(provider)
		st.ByProvider = append(st.ByProvider, pc)
	}
	if err := rows.Err(); err != nil {
		return ports.Stats{}, err
	}

	top, err := s.db.DB.QueryContext(ctx, `
		SELECT name, provider, download_count FROM modules
		ORDER BY download_count DESC, name ASC LIMIT 5
	`)
	if err != nil {
		return ports.Stats{}, err
	}
	defer top.Close()
	for top.Next() {
		var e ports.DownloadEntry
		var provider string
		if err := top.Scan(&e.Name, &provider, &e.Downloads); err != nil {
			return ports.Stats{}, err
		}
		e.Provider = module.Provider(provider)
		st.MostDownloaded = append(st.MostDownloaded, e)
	}
	return st, top.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanModule.
type scanner interface {
	Scan(dest ...any) error
}

func scanModule(row scanner) (module.Module, error) {
	var m module.Module
	var provider string
	var variables, outputs, examples, tags string
	var createdAt sql.NullTime

	if err := row.Scan(
		&m.ID, &m.Name, &provider, &m.ResourceType, &m.Version,
		&m.Description, &m.Template,
		&variables, &outputs, &examples, &tags,
		&createdAt, &m.DownloadCount,
	); err != nil {
		return module.Module{}, err
	}

	m.Provider = module.Provider(provider)
	if createdAt.Valid {
		m.CreatedAt = createdAt.Time.UTC()
	} else {
		m.CreatedAt = time.Time{}
	}
	if err := json.Unmarshal([]byte(variables), &m.Variables); err != nil {
		return module.Module{}, fmt.Errorf("decode variables for %s: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(outputs), &m.Outputs); err != nil {
		return module.Module{}, fmt.Errorf("decode outputs for %s: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(examples), &m.Examples); err != nil {
		return module.Module{}, fmt.Errorf("decode examples for %s: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(tags), &m.Tags); err != nil {
		return module.Module{}, fmt.Errorf("decode tags for %s: %w", m.ID, err)
	}
	return m, nil
}

func scanModules(rows *sql.Rows) ([]module.Module, error) {
	var out []module.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Ensure interface compliance.
var _ ports.ModuleStore = (*ModuleStore)(nil)
