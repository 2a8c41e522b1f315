// Package schema caches the table catalog that expressions are checked against.
package schema

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/atlekbai/function_registry/internal/db"
)

const loadQuery = `
SELECT
	c.table_schema, c.table_name, c.column_name, c.data_type,
	c.is_nullable = 'YES', c.ordinal_position
FROM information_schema.columns c
WHERE c.table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY c.table_schema, c.table_name, c.ordinal_position
`

// DefaultSchema wins when an unqualified name exists in several schemas.
const DefaultSchema = "public"

type columnRow struct {
	Schema   string
	Table    string
	Column   string
	DataType string
	Nullable bool
	Position int32
}

type Cache struct {
	mu          sync.RWMutex
	byQualified map[string]*Table
	byName      map[string]*Table
}

func NewCache() *Cache {
	return &Cache{
		byQualified: make(map[string]*Table),
		byName:      make(map[string]*Table),
	}
}

// NewCacheFromTables builds a cache from pre-built tables (for tests and
// offline use).
func NewCacheFromTables(tables ...*Table) *Cache {
	c := NewCache()
	c.replace(tables)
	return c
}

// Load replaces the cache contents with the database's current catalog.
func (c *Cache) Load(ctx context.Context, q db.Querier) error {
	rows, err := q.Query(ctx, loadQuery)
	if err != nil {
		return errors.Wrap(err, "schema cache load")
	}
	cols, err := pgx.CollectRows(rows, pgx.RowToStructByPos[columnRow])
	if err != nil {
		return errors.Wrap(err, "schema cache scan")
	}

	var tables []*Table
	grouped := make(map[string][]Column)
	for _, r := range cols {
		key := r.Schema + "." + r.Table
		if _, seen := grouped[key]; !seen {
			tables = append(tables, &Table{Schema: r.Schema, Name: r.Table})
		}
		grouped[key] = append(grouped[key], Column{
			Name:     r.Column,
			DataType: r.DataType,
			Nullable: r.Nullable,
			Position: int(r.Position),
		})
	}
	for i, t := range tables {
		tables[i] = NewTable(t.Schema, t.Name, grouped[t.QualifiedName()]...)
	}

	c.replace(tables)
	return nil
}

func (c *Cache) replace(tables []*Table) {
	byQualified := make(map[string]*Table, len(tables))
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byQualified[strings.ToLower(t.QualifiedName())] = t
		name := strings.ToLower(t.Name)
		if prev, ok := byName[name]; !ok || (t.Schema == DefaultSchema && prev.Schema != DefaultSchema) {
			byName[name] = t
		}
	}

	c.mu.Lock()
	c.byQualified = byQualified
	c.byName = byName
	c.mu.Unlock()
}

// Get finds a table by `name` or `schema.name`, ignoring case.
func (c *Cache) Get(name string) *Table {
	key := strings.ToLower(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if strings.Contains(key, ".") {
		return c.byQualified[key]
	}
	return c.byName[key]
}

// TableCount returns the number of loaded tables.
func (c *Cache) TableCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byQualified)
}
