package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/epsilon/internal/scenario"
)

// RunRecord is one recorded check run of one scenario.
type RunRecord struct {
	// Token identifies the run. UUIDv7, so lexical order is time order.
	Token string

	// CreatedAt is the recording time, UTC.
	CreatedAt time.Time

	// Scenario is the scenario name.
	Scenario string

	// Expr is the expression that was checked.
	Expr string

	// Var is the differentiation variable.
	Var string

	// CasesTotal and CasesFailed count the scenario's cases.
	CasesTotal  int
	CasesFailed int

	// Passed reports whether every case passed.
	Passed bool
}

// RecordRun stores the outcome of a scenario run and returns the
// record, with its freshly minted token.
func (s *Store) RecordRun(ctx context.Context, res *scenario.Result) (*RunRecord, error) {
	rec := &RunRecord{
		Token:       uuid.Must(uuid.NewV7()).String(),
		CreatedAt:   time.Now().UTC(),
		Scenario:    res.Name,
		Expr:        res.Expr,
		Var:         res.Var,
		CasesTotal:  len(res.Cases),
		CasesFailed: res.Failed(),
		Passed:      res.Passed,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(token, created_at, scenario, expr, var, cases_total, cases_failed, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Token,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.Scenario,
		rec.Expr,
		rec.Var,
		rec.CasesTotal,
		rec.CasesFailed,
		boolToInt(rec.Passed),
	)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}

	return rec, nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0
// means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT token, created_at, scenario, expr, var, cases_total, cases_failed, passed
		FROM runs
		ORDER BY token DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return records, nil
}

// GetRun fetches a single run by token.
func (s *Store) GetRun(ctx context.Context, token string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, created_at, scenario, expr, var, cases_total, cases_failed, passed
		FROM runs
		WHERE token = ?
	`, token)

	rec, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", token, err)
	}
	return &rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var rec RunRecord
	var createdAt string
	var passed int
	if err := row.Scan(
		&rec.Token,
		&createdAt,
		&rec.Scenario,
		&rec.Expr,
		&rec.Var,
		&rec.CasesTotal,
		&rec.CasesFailed,
		&passed,
	); err != nil {
		return RunRecord{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = t
	rec.Passed = passed != 0
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
