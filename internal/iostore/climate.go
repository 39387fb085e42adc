package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

type sqliteClimateStore struct {
	db *sql.DB
}

// OpenClimate opens (creating if absent) the climate store at path, a
// separate SQLite file from the primary record store so it can be rebuilt
// independently.
func OpenClimate(path string) (store.ClimateStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	db.SetMaxOpenConns(1)
	return &sqliteClimateStore{db: db}, nil
}

func (c *sqliteClimateStore) CreateSchema(ctx context.Context) error {
	rec := model.ClimateRecord{}
	if _, err := c.db.ExecContext(ctx, rec.TableDDL()); err != nil {
		return CreateSchemaError(rec.TableName(), err)
	}
	return nil
}

func zoneColumns() []string {
	cols := make([]string, len(model.KgZones))
	for i, z := range model.KgZones {
		cols[i] = "kg_" + z
	}
	return cols
}

func (c *sqliteClimateStore) Upsert(ctx context.Context, rec model.ClimateRecord) error {
	cols := append([]string{"taxon_key"}, zoneColumns()...)
	cols = append(cols, "country_codes")

	args := make([]any, 0, len(cols))
	args = append(args, rec.TaxonKey)
	for _, n := range rec.Counts {
		args = append(args, n)
	}
	args = append(args, rec.CountryCodes)

	ph := make([]string, len(cols))
	for i := range ph {
		ph[i] = "?"
	}

	var sets []string
	for _, z := range model.KgZones {
		col := "kg_" + z
		sets = append(sets, fmt.Sprintf("%s = %s + excluded.%s", col, col, col))
	}
	sets = append(sets, "country_codes = excluded.country_codes")

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(taxon_key) DO UPDATE SET %s",
		rec.TableName(), strings.Join(cols, ","), strings.Join(ph, ","), strings.Join(sets, ","),
	)
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return InsertError(rec.TableName(), err)
	}
	return nil
}

func (c *sqliteClimateStore) Get(ctx context.Context, taxonKey int64) (model.ClimateRecord, bool, error) {
	cols := append([]string{"taxon_key"}, zoneColumns()...)
	cols = append(cols, "country_codes")
	query := fmt.Sprintf("SELECT %s FROM climate_data WHERE taxon_key = ?", strings.Join(cols, ","))

	scanArgs := make([]any, len(cols))
	var rec model.ClimateRecord
	scanArgs[0] = &rec.TaxonKey
	for i := range rec.Counts {
		scanArgs[i+1] = &rec.Counts[i]
	}
	scanArgs[len(scanArgs)-1] = &rec.CountryCodes

	err := c.db.QueryRowContext(ctx, query, taxonKey).Scan(scanArgs...)
	if err == sql.ErrNoRows {
		return model.ClimateRecord{}, false, nil
	}
	if err != nil {
		return model.ClimateRecord{}, false, QueryError("climate_get", err)
	}
	return rec, true, nil
}

func (c *sqliteClimateStore) Close() error {
	if err := c.db.Close(); err != nil {
		return CloseError(err)
	}
	return nil
}
