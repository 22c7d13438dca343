package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realty_feasibility/pkg/core/feasibility"
)

// ErrNotFound is returned when no report is stored under an ID.
var ErrNotFound = errors.New("report not found")

// SavedReport is a persisted run.
type SavedReport struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Report    *feasibility.Report `json:"report"`
}

// ReportStore keeps computed reports.
// Postgres is used when a pool is given, otherwise JSON files under dir.
type ReportStore struct {
	pool *pgxpool.Pool
	dir  string
}

// NewReportStore creates a store. With a nil pool and an empty dir the files
// go to .cache/feasibility/reports.
func NewReportStore(p *pgxpool.Pool, dir string) *ReportStore {
	if p == nil && dir == "" {
		dir = filepath.Join(".cache", "feasibility", "reports")
	}
	if p == nil {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check report store dir: %v\n", err)
		}
	}
	return &ReportStore{pool: p, dir: dir}
}

// Backend names where reports go, for logs.
func (s *ReportStore) Backend() string {
	if s.pool != nil {
		return "postgres"
	}
	return "file:" + s.dir
}

// Save persists rep under a fresh ID.
func (s *ReportStore) Save(ctx context.Context, name string, rep *feasibility.Report) (*SavedReport, error) {
	if rep == nil {
		return nil, fmt.Errorf("nil report")
	}
	saved := &SavedReport{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Report:    rep,
	}

	if s.pool != nil {
		data, err := json.Marshal(rep)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		query := `
			INSERT INTO feasibility_reports (id, name, irr_pct, margin_pct, report, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id)
			DO UPDATE SET
				name = EXCLUDED.name,
				irr_pct = EXCLUDED.irr_pct,
				margin_pct = EXCLUDED.margin_pct,
				report = EXCLUDED.report,
				updated_at = NOW()
		`
		_, err = s.pool.Exec(ctx, query,
			saved.ID, name, rep.Summary.IRRPct, rep.Summary.ProfitMarginPct, data, saved.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Printf("[STORE] Saved report %s to postgres\n", saved.ID)
		return saved, nil
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(s.path(saved.ID), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}
	fmt.Printf("[STORE] Saved report %s to %s\n", saved.ID, s.dir)
	return saved, nil
}

// Get loads a report by ID.
func (s *ReportStore) Get(ctx context.Context, id uuid.UUID) (*SavedReport, error) {
	if s.pool != nil {
		query := `SELECT name, created_at, report FROM feasibility_reports WHERE id = $1`
		saved := &SavedReport{ID: id}
		var data []byte
		err := s.pool.QueryRow(ctx, query, id).Scan(&saved.Name, &saved.CreatedAt, &data)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query report: %w", err)
		}
		if err := json.Unmarshal(data, &saved.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored report: %w", err)
		}
		return saved, nil
	}

	return s.loadFromFile(s.path(id))
}

// List returns stored reports, newest first.
func (s *ReportStore) List(ctx context.Context, limit int) ([]*SavedReport, error) {
	if limit <= 0 {
		limit = 50
	}

	if s.pool != nil {
		query := `
			SELECT id, name, created_at, report
			FROM feasibility_reports
			ORDER BY created_at DESC
			LIMIT $1
		`
		rows, err := s.pool.Query(ctx, query, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to query reports: %w", err)
		}
		defer rows.Close()

		var out []*SavedReport
		for rows.Next() {
			saved := &SavedReport{}
			var data []byte
			if err := rows.Scan(&saved.ID, &saved.Name, &saved.CreatedAt, &data); err != nil {
				return nil, fmt.Errorf("failed to scan report row: %w", err)
			}
			if err := json.Unmarshal(data, &saved.Report); err != nil {
				return nil, fmt.Errorf("failed to unmarshal stored report: %w", err)
			}
			out = append(out, saved)
		}
		return out, rows.Err()
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report dir: %w", err)
	}
	var out []*SavedReport
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		saved, err := s.loadFromFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			fmt.Printf("[WARNING] Skipping %s: %v\n", e.Name(), err)
			continue
		}
		out = append(out, saved)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ReportStore) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

func (s *ReportStore) loadFromFile(path string) (*SavedReport, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	var saved SavedReport
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report file: %w", err)
	}
	return &saved, nil
}
