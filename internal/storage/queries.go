package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/brtiers/internal/model"
)

const runColumns = `id, kind, mode, created_at, source, countries, brs, records`

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func insertRun(tx *sql.Tx, run model.RunInfo) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO runs(`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Mode.String(), run.CreatedAt.UTC().Format(timeLayout),
		run.Source, run.Countries, run.BRs, run.Records,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// SaveRates stores a rates run and its records in one transaction.
func (db *DB) SaveRates(run model.RunInfo, recs []model.RateRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRun(tx, run); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO rate_records(
			run_id, country, br, full_downtier, downtier, uptier, full_uptier, count
		) VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		_, err = stmt.Exec(run.ID, r.Country, r.BR.Float(),
			r.FullDowntier, r.Downtier, r.Uptier, r.FullUptier, r.Count)
		if err != nil {
			return fmt.Errorf("insert rate_records for %s/%s: %w", r.Country, r.BR, err)
		}
	}
	return tx.Commit()
}

// SaveWeighted stores a weighted run, its scores and the win rates behind
// them in one transaction.
func (db *DB) SaveWeighted(run model.RunInfo, recs []model.WeightedRecord, wins []model.VehicleWinStat) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRun(tx, run); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO weighted_records(
			run_id, country, br, weighted, win_rate, vehicle, count
		) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range recs {
		_, err = stmt.Exec(run.ID, r.Country, r.BR.Float(), r.Weighted, r.WinRate, r.Vehicle, r.Count)
		if err != nil {
			return fmt.Errorf("insert weighted_records for %s/%s: %w", r.Country, r.BR, err)
		}
	}

	wstmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO vehicle_winrates(
			run_id, vehicle, country, br, win_rate, games, victories, defeats,
			match_mode, unit_class, unit_move_type
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer wstmt.Close()
	for _, w := range wins {
		_, err = wstmt.Exec(run.ID, w.Vehicle, w.Country, w.BR.Float(), w.WinRate,
			w.Games, w.Victories, w.Defeats, w.MatchMode.String(), w.UnitClass, w.UnitMoveType)
		if err != nil {
			return fmt.Errorf("insert vehicle_winrates for %s: %w", w.Vehicle, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (model.RunInfo, error) {
	var (
		r       model.RunInfo
		kind    string
		mode    string
		created string
	)
	if err := s.Scan(&r.ID, &kind, &mode, &created, &r.Source, &r.Countries, &r.BRs, &r.Records); err != nil {
		return r, err
	}
	r.Kind = model.RunKind(kind)
	r.Mode, _ = model.ParseMatchMode(mode)
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return r, fmt.Errorf("run %s: bad created_at %q: %w", r.ID, created, err)
	}
	r.CreatedAt = t
	return r, nil
}

// ListRuns returns all stored runs, newest first.
func (db *DB) ListRuns() ([]model.RunInfo, error) {
	rows, err := db.conn.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RunInfo
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRunByPrefix finds the newest run whose id starts with prefix.
// It returns nil, nil when nothing matches.
func (db *DB) GetRunByPrefix(prefix string) (*model.RunInfo, error) {
	row := db.conn.QueryRow(`SELECT `+runColumns+` FROM runs
		WHERE id LIKE ? ORDER BY created_at DESC LIMIT 1`, prefix+"%")
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRateRecords returns a run's rate records ordered by country then BR.
func (db *DB) GetRateRecords(runID string) ([]model.RateRecord, error) {
	rows, err := db.conn.Query(`
		SELECT country, br, full_downtier, downtier, uptier, full_uptier, count
		FROM rate_records WHERE run_id = ? ORDER BY country, br`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RateRecord
	for rows.Next() {
		var (
			r  model.RateRecord
			br float64
		)
		if err := rows.Scan(&r.Country, &br, &r.FullDowntier, &r.Downtier, &r.Uptier, &r.FullUptier, &r.Count); err != nil {
			return nil, err
		}
		r.BR = model.BRFromFloat(br)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetWeightedRecords returns a run's weighted records ordered by country then BR.
func (db *DB) GetWeightedRecords(runID string) ([]model.WeightedRecord, error) {
	rows, err := db.conn.Query(`
		SELECT country, br, weighted, win_rate, vehicle, count
		FROM weighted_records WHERE run_id = ? ORDER BY country, br`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WeightedRecord
	for rows.Next() {
		var (
			r  model.WeightedRecord
			br float64
		)
		if err := rows.Scan(&r.Country, &br, &r.Weighted, &r.WinRate, &r.Vehicle, &r.Count); err != nil {
			return nil, err
		}
		r.BR = model.BRFromFloat(br)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetVehicleWinRates returns the win rates stored with a weighted run.
func (db *DB) GetVehicleWinRates(runID string) ([]model.VehicleWinStat, error) {
	rows, err := db.conn.Query(`
		SELECT vehicle, country, br, win_rate, games, victories, defeats,
		       match_mode, unit_class, unit_move_type
		FROM vehicle_winrates WHERE run_id = ? ORDER BY vehicle`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VehicleWinStat
	for rows.Next() {
		var (
			w    model.VehicleWinStat
			br   float64
			mode string
		)
		if err := rows.Scan(&w.Vehicle, &w.Country, &br, &w.WinRate, &w.Games, &w.Victories, &w.Defeats,
			&mode, &w.UnitClass, &w.UnitMoveType); err != nil {
			return nil, err
		}
		w.BR = model.BRFromFloat(br)
		w.MatchMode, _ = model.ParseMatchMode(mode)
		out = append(out, w)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
