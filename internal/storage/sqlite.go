package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mpataki/figgen/internal/models"
	_ "modernc.org/sqlite"
)

// Storage is the run audit index. It is written as the pipeline progresses
// and read by list/status/delete and the TUI; no pipeline decision depends
// on it.
type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP,
		mode TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		work_dir TEXT NOT NULL,
		context TEXT NOT NULL,
		intent TEXT NOT NULL,
		iterations INTEGER NOT NULL DEFAULT 0,
		final_path TEXT,
		error TEXT
	);

	CREATE TABLE IF NOT EXISTS iterations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		idx INTEGER NOT NULL,
		artifact_path TEXT NOT NULL,
		suggestions TEXT,
		revised INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(run_id, idx)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	CREATE INDEX IF NOT EXISTS idx_iterations_run ON iterations(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) CreateRun(run *models.Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, mode, status, work_dir, context, intent)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Mode, run.Status, run.WorkDir, run.Context, run.Intent,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Storage) UpdateRunStatus(id int64, status models.RunStatus) error {
	_, err := s.db.Exec(`UPDATE runs SET status = ? WHERE id = ?`, status, id)
	return err
}

func (s *Storage) CompleteRun(id int64, iterations int, finalPath string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, iterations = ?, final_path = ?, completed_at = ? WHERE id = ?`,
		models.RunStatusComplete, iterations, finalPath, time.Now(), id,
	)
	return err
}

func (s *Storage) FailRun(id int64, iterations int, reason string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, iterations = ?, error = ?, completed_at = ? WHERE id = ?`,
		models.RunStatusFailed, iterations, reason, time.Now(), id,
	)
	return err
}

func (s *Storage) GetRun(runID string) (*models.Run, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, created_at, completed_at, mode, status, work_dir, context, intent, iterations, final_path, error
		 FROM runs WHERE run_id = ?`, runID,
	)
	return scanRun(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var completedAt sql.NullTime
	var finalPath, errMsg sql.NullString

	err := row.Scan(
		&run.ID, &run.RunID, &run.CreatedAt, &completedAt, &run.Mode,
		&run.Status, &run.WorkDir, &run.Context, &run.Intent,
		&run.Iterations, &finalPath, &errMsg,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	if finalPath.Valid {
		run.FinalPath = &finalPath.String
	}
	if errMsg.Valid {
		run.Error = &errMsg.String
	}

	return &run, nil
}

func (s *Storage) ListRuns(limit int) ([]*models.Run, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, created_at, completed_at, mode, status, work_dir, context, intent, iterations, final_path, error
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *Storage) AddIteration(iter *models.Iteration) (int64, error) {
	var suggestionsJSON *string
	if iter.Suggestions != nil {
		data, err := json.Marshal(iter.Suggestions)
		if err != nil {
			return 0, err
		}
		str := string(data)
		suggestionsJSON = &str
	}

	result, err := s.db.Exec(
		`INSERT INTO iterations (run_id, idx, artifact_path, suggestions, revised, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		iter.RunID, iter.Index, iter.ArtifactPath, suggestionsJSON, iter.Revised, iter.DurationMS,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Storage) ListIterations(runID int64) ([]*models.Iteration, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, idx, artifact_path, suggestions, revised, duration_ms, created_at
		 FROM iterations WHERE run_id = ? ORDER BY idx`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var iters []*models.Iteration
	for rows.Next() {
		var iter models.Iteration
		var suggestionsJSON sql.NullString

		err := rows.Scan(
			&iter.ID, &iter.RunID, &iter.Index, &iter.ArtifactPath,
			&suggestionsJSON, &iter.Revised, &iter.DurationMS, &iter.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if suggestionsJSON.Valid {
			var suggestions []string
			if err := json.Unmarshal([]byte(suggestionsJSON.String), &suggestions); err == nil {
				iter.Suggestions = suggestions
			}
		}

		iters = append(iters, &iter)
	}

	return iters, rows.Err()
}

func (s *Storage) DeleteRun(runID string) error {
	run, err := s.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM iterations WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, run.ID); err != nil {
		return err
	}

	return tx.Commit()
}
