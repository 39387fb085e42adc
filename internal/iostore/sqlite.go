package iostore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

// sqliteStore implements store.Store over a single SQLite file holding the
// specimen and staging tables.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if absent) the primary record store at path.
func Open(path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite: serialize writers per connection
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) CreateSchema(ctx context.Context) error {
	specimen := model.Specimen{}
	staging := model.Staging{}

	for _, ddl := range []model.DDLGenerator{specimen, staging} {
		if _, err := s.db.ExecContext(ctx, ddl.TableDDL()); err != nil {
			return CreateSchemaError(ddl.TableName(), err)
		}
		for _, idx := range ddl.IndexDDL() {
			if _, err := s.db.ExecContext(ctx, idx); err != nil {
				return CreateSchemaError(ddl.TableName(), err)
			}
		}
	}
	return nil
}

// specimenColumns lists the insert/select column order, kept in one place
// so InsertSpecimens, AllSpecimens and SpecimensByID agree on layout.
var specimenColumns = []string{
	"specimen_id", "nuc_raw", "nuc_san", "content_hash", "last_updated",
	"review", "include", "taxon_key",
	"taxon_kingdom", "taxon_phylum", "taxon_class", "taxon_order",
	"taxon_family", "taxon_subfamily", "taxon_tribe", "taxon_genus",
	"taxon_species", "taxon_subspecies",
	"identification_rank", "country_iso", "coord", "kg_zone",
	"checks", "geo_info", "processing_info",
}

func specimenArgs(r model.Specimen) []any {
	return []any{
		r.SpecimenID, r.NucRaw, r.NucSan, r.ContentHash, r.LastUpdated,
		r.Review, r.Include, r.TaxonKey,
		r.TaxonKingdom, r.TaxonPhylum, r.TaxonClass, r.TaxonOrder,
		r.TaxonFamily, r.TaxonSubfamily, r.TaxonTribe, r.TaxonGenus,
		r.TaxonSpecies, r.TaxonSubspecies,
		r.IdentificationRank, r.CountryISO, r.Coord, r.KgZone,
		r.Checks, r.GeoInfo, r.ProcessingInfo,
	}
}

func scanSpecimen(row interface{ Scan(...any) error }) (model.Specimen, error) {
	var r model.Specimen
	err := row.Scan(
		&r.SpecimenID, &r.NucRaw, &r.NucSan, &r.ContentHash, &r.LastUpdated,
		&r.Review, &r.Include, &r.TaxonKey,
		&r.TaxonKingdom, &r.TaxonPhylum, &r.TaxonClass, &r.TaxonOrder,
		&r.TaxonFamily, &r.TaxonSubfamily, &r.TaxonTribe, &r.TaxonGenus,
		&r.TaxonSpecies, &r.TaxonSubspecies,
		&r.IdentificationRank, &r.CountryISO, &r.Coord, &r.KgZone,
		&r.Checks, &r.GeoInfo, &r.ProcessingInfo,
	)
	return r, err
}

func (s *sqliteStore) InsertSpecimens(ctx context.Context, rows []model.Specimen) error {
	const cols = 25
	return chunked(len(rows), store.MaxBoundParams/cols, func(lo, hi int) error {
		return s.insertSpecimenChunk(ctx, rows[lo:hi])
	})
}

func (s *sqliteStore) insertSpecimenChunk(ctx context.Context, rows []model.Specimen) error {
	if len(rows) == 0 {
		return nil
	}
	var placeholders []string
	var args []any
	n := len(specimenColumns)
	for _, r := range rows {
		ph := make([]string, n)
		for j := range ph {
			ph[j] = "?"
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ",")+")")
		args = append(args, specimenArgs(r)...)
	}
	// A row whose specimen_id already exists (a changed record in update
	// mode) is overwritten in place, except for checks, which the update
	// path clears separately so the LOC_* bits survive.
	var set []string
	for _, c := range specimenColumns {
		if c != "specimen_id" && c != "checks" {
			set = append(set, c+"=excluded."+c)
		}
	}
	query := fmt.Sprintf(
		"INSERT INTO specimen (%s) VALUES %s ON CONFLICT(specimen_id) DO UPDATE SET %s",
		strings.Join(specimenColumns, ","),
		strings.Join(placeholders, ","),
		strings.Join(set, ","),
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return InsertError("specimen", err)
	}
	return nil
}

func (s *sqliteStore) InsertStaging(ctx context.Context, rows []store.StagingRow) error {
	const cols = 3
	return chunked(len(rows), store.MaxBoundParams/cols, func(lo, hi int) error {
		return s.insertStagingChunk(ctx, rows[lo:hi])
	})
}

func (s *sqliteStore) insertStagingChunk(ctx context.Context, rows []store.StagingRow) error {
	if len(rows) == 0 {
		return nil
	}
	var placeholders []string
	var args []any
	for _, r := range rows {
		fieldsJSON, err := json.Marshal(r.Fields)
		if err != nil {
			return InsertError("staging", err)
		}
		placeholders = append(placeholders, "(?,?,?)")
		args = append(args, r.SpecimenID, r.ContentHash, string(fieldsJSON))
	}
	query := fmt.Sprintf(
		"INSERT INTO staging (specimen_id, content_hash, fields_json) VALUES %s "+
			"ON CONFLICT(specimen_id) DO UPDATE SET content_hash=excluded.content_hash, fields_json=excluded.fields_json",
		strings.Join(placeholders, ","),
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return InsertError("staging", err)
	}
	return nil
}

func (s *sqliteStore) SpecimensByID(ctx context.Context, ids []int64) ([]model.Specimen, error) {
	var out []model.Specimen
	err := chunked(len(ids), store.MaxBoundParams, func(lo, hi int) error {
		chunk := ids[lo:hi]
		ph := make([]string, len(chunk))
		args := make([]any, len(chunk))
		for i, id := range chunk {
			ph[i] = "?"
			args[i] = id
		}
		query := fmt.Sprintf(
			"SELECT %s FROM specimen WHERE specimen_id IN (%s)",
			strings.Join(specimenColumns, ","), strings.Join(ph, ","),
		)
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return QueryError("specimens_by_id", err)
		}
		defer rows.Close()
		for rows.Next() {
			r, err := scanSpecimen(rows)
			if err != nil {
				return QueryError("specimens_by_id", err)
			}
			out = append(out, r)
		}
		return rows.Err()
	})
	return out, err
}

func (s *sqliteStore) AllSpecimens(ctx context.Context, fn func(model.Specimen) error) error {
	query := fmt.Sprintf("SELECT %s FROM specimen ORDER BY specimen_id", strings.Join(specimenColumns, ","))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return QueryError("all_specimens", err)
	}
	defer rows.Close()
	for rows.Next() {
		r, err := scanSpecimen(rows)
		if err != nil {
			return QueryError("all_specimens", err)
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *sqliteStore) ExistingState(ctx context.Context, id int64) (string, sql.NullInt64, bool, error) {
	var hash string
	var taxonKey sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT content_hash, taxon_key FROM specimen WHERE specimen_id = ?", id,
	).Scan(&hash, &taxonKey)
	if err == sql.ErrNoRows {
		return "", sql.NullInt64{}, false, nil
	}
	if err != nil {
		return "", sql.NullInt64{}, false, QueryError("existing_state", err)
	}
	return hash, taxonKey, true, nil
}

func (s *sqliteStore) OrChecks(ctx context.Context, updates map[int64]bits.Checks) error {
	ids := keys(updates)
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpdateError("specimen", err)
	}
	stmt, err := tx.PrepareContext(ctx, "UPDATE specimen SET checks = checks | ? WHERE specimen_id = ?")
	if err != nil {
		tx.Rollback()
		return UpdateError("specimen", err)
	}
	defer stmt.Close()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, updates[id], id); err != nil {
			tx.Rollback()
			return UpdateError("specimen", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return UpdateError("specimen", err)
	}
	return nil
}

func (s *sqliteStore) ClearChecks(ctx context.Context, ids []int64, keepMask bits.Checks) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpdateError("specimen", err)
	}
	stmt, err := tx.PrepareContext(ctx, "UPDATE specimen SET checks = checks & ? WHERE specimen_id = ?")
	if err != nil {
		tx.Rollback()
		return UpdateError("specimen", err)
	}
	defer stmt.Close()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, keepMask, id); err != nil {
			tx.Rollback()
			return UpdateError("specimen", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return UpdateError("specimen", err)
	}
	return nil
}

func (s *sqliteStore) UpdateNucSan(ctx context.Context, updates map[int64]string) error {
	return s.updateColumn(ctx, "nuc_san", func(id int64) any { return updates[id] }, keysStr(updates))
}

func (s *sqliteStore) UpdateTaxonKey(ctx context.Context, updates map[int64]int64) error {
	return s.updateColumn(ctx, "taxon_key", func(id int64) any { return updates[id] }, keysInt(updates))
}

func (s *sqliteStore) UpdateIdentificationRank(ctx context.Context, updates map[int64]string) error {
	return s.updateColumn(ctx, "identification_rank", func(id int64) any { return updates[id] }, keysStr(updates))
}

func (s *sqliteStore) UpdateInclude(ctx context.Context, updates map[int64]bool) error {
	return s.updateColumn(ctx, "include", func(id int64) any { return updates[id] }, keysBool(updates))
}

func (s *sqliteStore) UpdateReview(ctx context.Context, updates map[int64]bool) error {
	return s.updateColumn(ctx, "review", func(id int64) any { return updates[id] }, keysBool(updates))
}

func (s *sqliteStore) UpdateGeoInfo(ctx context.Context, updates map[int64]float64) error {
	return s.updateColumn(ctx, "geo_info", func(id int64) any { return updates[id] }, keysFloat(updates))
}

func (s *sqliteStore) UpdateProcessingInfo(ctx context.Context, updates map[int64]string) error {
	return s.updateColumn(ctx, "processing_info", func(id int64) any { return updates[id] }, keysStr(updates))
}

func (s *sqliteStore) updateColumn(ctx context.Context, column string, valueFor func(int64) any, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpdateError("specimen", err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("UPDATE specimen SET %s = ? WHERE specimen_id = ?", column))
	if err != nil {
		tx.Rollback()
		return UpdateError("specimen", err)
	}
	defer stmt.Close()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, valueFor(id), id); err != nil {
			tx.Rollback()
			return UpdateError("specimen", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return UpdateError("specimen", err)
	}
	return nil
}

func (s *sqliteStore) SelectedIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT specimen_id FROM specimen WHERE (checks & ?) != 0", bits.SELECTED,
	)
	if err != nil {
		return nil, QueryError("selected_ids", err)
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, QueryError("selected_ids", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *sqliteStore) ReviewLineages(ctx context.Context) ([]store.LineageRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT specimen_id, taxon_kingdom, taxon_phylum, taxon_class, taxon_order, "+
			"taxon_family, taxon_subfamily, taxon_tribe, taxon_genus, taxon_species, taxon_subspecies "+
			"FROM specimen WHERE review = ?", true,
	)
	if err != nil {
		return nil, QueryError("review_lineages", err)
	}
	defer rows.Close()

	var out []store.LineageRow
	for rows.Next() {
		var r store.LineageRow
		var kingdom, phylum, class, order, family, subfamily, tribe, genus, species, subspecies sql.NullString
		if err := rows.Scan(&r.SpecimenID, &kingdom, &phylum, &class, &order,
			&family, &subfamily, &tribe, &genus, &species, &subspecies); err != nil {
			return nil, QueryError("review_lineages", err)
		}
		r.Lineage = [10]string{
			kingdom.String, phylum.String, class.String, order.String, family.String,
			subfamily.String, tribe.String, genus.String, species.String, subspecies.String,
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) DistinctTaxonKeys(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT taxon_key FROM specimen WHERE taxon_key IS NOT NULL",
	)
	if err != nil {
		return nil, QueryError("distinct_taxon_keys", err)
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var key int64
		if err := rows.Scan(&key); err != nil {
			return nil, QueryError("distinct_taxon_keys", err)
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func (s *sqliteStore) SequencesByTaxonKey(ctx context.Context, taxonKey int64) ([]store.SequenceRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT specimen_id, nuc_raw FROM specimen WHERE taxon_key = ? ORDER BY specimen_id", taxonKey,
	)
	if err != nil {
		return nil, QueryError("sequences_by_taxon_key", err)
	}
	defer rows.Close()
	var out []store.SequenceRow
	for rows.Next() {
		var r store.SequenceRow
		if err := rows.Scan(&r.SpecimenID, &r.NucRaw); err != nil {
			return nil, QueryError("sequences_by_taxon_key", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) SpecimensByTaxonKey(ctx context.Context, taxonKey int64) ([]model.Specimen, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM specimen WHERE taxon_key = ? ORDER BY specimen_id",
		strings.Join(specimenColumns, ","),
	)
	rows, err := s.db.QueryContext(ctx, query, taxonKey)
	if err != nil {
		return nil, QueryError("specimens_by_taxon_key", err)
	}
	defer rows.Close()
	var out []model.Specimen
	for rows.Next() {
		r, err := scanSpecimen(rows)
		if err != nil {
			return nil, QueryError("specimens_by_taxon_key", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) TaxonKeysNeedingGeoCheck(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT taxon_key FROM specimen
		 WHERE taxon_key IS NOT NULL
		 AND (checks & ?) != 0
		 AND (checks & ?) = 0`,
		bits.INCL_SPECIES, bits.LOC_CHECKED,
	)
	if err != nil {
		return nil, QueryError("taxon_keys_needing_geo_check", err)
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var key int64
		if err := rows.Scan(&key); err != nil {
			return nil, QueryError("taxon_keys_needing_geo_check", err)
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func (s *sqliteStore) RawQuery(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, QueryError("raw_query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, QueryError("raw_query", err)
	}

	var out [][]string
	vals := make([]sql.RawBytes, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, QueryError("raw_query", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v != nil {
				row[i] = string(v)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func (s *sqliteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return CloseError(err)
	}
	return nil
}

// chunked calls fn once per [lo, hi) slice of [0, total) no larger than size.
func chunked(total, size int, fn func(lo, hi int) error) error {
	if size <= 0 {
		size = total
	}
	for lo := 0; lo < total; lo += size {
		hi := lo + size
		if hi > total {
			hi = total
		}
		if err := fn(lo, hi); err != nil {
			return err
		}
	}
	return nil
}

func keys(m map[int64]bits.Checks) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysStr(m map[int64]string) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysInt(m map[int64]int64) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysBool(m map[int64]bool) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysFloat(m map[int64]float64) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
