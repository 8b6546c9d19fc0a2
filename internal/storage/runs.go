package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one finished session: final score, the ending it earned and how
// long it lasted.
type Run struct {
	ID        uuid.UUID
	GameID    string
	Player    string // SSH user or local $USER; may be empty
	Score     int
	Ending    string // ending key, e.g. "micky"
	Cleared   int    // columns flown past
	Duration  time.Duration
	CreatedAt time.Time
}

// ErrRunNotFound is returned by RunByID for unknown IDs.
var ErrRunNotFound = errors.New("storage: run not found")

// SaveRun records a finished run together with its score entry. A zero ID
// is replaced by a fresh random one, which is returned.
func (s *Store) SaveRun(run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO runs (id, game_id, player, score, ending, cleared, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.GameID, run.Player, run.Score, run.Ending, run.Cleared, run.Duration.Milliseconds(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	if _, err := saveScore(tx, run.GameID, run.Score); err != nil {
		return uuid.Nil, err
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

const runColumns = `id, game_id, player, score, ending, cleared, duration_ms, created_at`

// RunByID retrieves a run by its ID.
func (s *Store) RunByID(id uuid.UUID) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id.String())
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return run, nil
}

// RecentRuns retrieves the most recent runs for a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	return s.queryRuns(`ORDER BY created_at DESC, rowid DESC`, gameID, limit)
}

// BestRuns retrieves the highest scoring runs for a game. Ties go to the
// earlier run.
func (s *Store) BestRuns(gameID string, limit int) ([]Run, error) {
	return s.queryRuns(`ORDER BY score DESC, created_at ASC, rowid ASC`, gameID, limit)
}

func (s *Store) queryRuns(order, gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? `+order+` LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// EndingCounts returns how many runs of a game reached each ending.
func (s *Store) EndingCounts(gameID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT ending, COUNT(*) FROM runs WHERE game_id = ? GROUP BY ending`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count endings: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ending string
		var n int
		if err := rows.Scan(&ending, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[ending] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var id string
	var durationMS int64
	var createdAt any

	if err := sc.Scan(&id, &run.GameID, &run.Player, &run.Score, &run.Ending, &run.Cleared, &durationMS, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt run id %q: %w", id, err)
	}
	run.ID = parsed
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
