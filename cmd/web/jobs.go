package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// AnalysisJob tracks one submitted sequence analysis through its lifecycle.
type AnalysisJob struct {
	ID         string    `json:"id"`
	SequenceID string    `json:"sequence_id"`
	State      string    `json:"state"` // queued | running | done | failed
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// jobsStore selects the persistence backend: "json" (default) or "sqlite".
var (
	jobsStore = "json"
	jobsPath  = "jobs.json"
	jobsDB    *sql.DB
	jobsMu    sync.Mutex
)

const jobsSchema = `CREATE TABLE IF NOT EXISTS jobs (
    id TEXT PRIMARY KEY,
    sequence_id TEXT,
    state TEXT,
    message TEXT,
    created_at TEXT,
    updated_at TEXT
)`

// initJobsStore opens the selected backend. For sqlite it also ensures the schema.
func initJobsStore(store, path string) error {
	jobsStore = store
	jobsPath = path
	if store != "sqlite" {
		return nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite jobs store: %w", err)
	}
	if _, err := db.Exec(jobsSchema); err != nil {
		db.Close()
		return fmt.Errorf("init jobs schema: %w", err)
	}
	jobsDB = db
	return nil
}

func saveJobs(path string, jobs []AnalysisJob) error {
	if jobsStore == "sqlite" && jobsDB != nil {
		tx, err := jobsDB.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM jobs"); err != nil {
			tx.Rollback()
			return err
		}
		for _, j := range jobs {
			_, err := tx.Exec("INSERT INTO jobs (id, sequence_id, state, message, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
				j.ID, j.SequenceID, j.State, j.Message, j.CreatedAt.UTC().Format(time.RFC3339), j.UpdatedAt.UTC().Format(time.RFC3339))
			if err != nil {
				tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	}
	out, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func loadJobs(path string) ([]AnalysisJob, error) {
	if jobsStore == "sqlite" && jobsDB != nil {
		rows, err := jobsDB.Query("SELECT id, sequence_id, state, message, created_at, updated_at FROM jobs ORDER BY created_at")
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var jobs []AnalysisJob
		for rows.Next() {
			var j AnalysisJob
			var created, updated string
			if err := rows.Scan(&j.ID, &j.SequenceID, &j.State, &j.Message, &created, &updated); err != nil {
				return nil, err
			}
			j.CreatedAt, _ = time.Parse(time.RFC3339, created)
			j.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
			jobs = append(jobs, j)
		}
		return jobs, rows.Err()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []AnalysisJob{}, nil
		}
		return nil, err
	}
	var jobs []AnalysisJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// upsertJob replaces the job with the same ID, or appends it, then persists.
func upsertJob(job AnalysisJob) error {
	jobsMu.Lock()
	defer jobsMu.Unlock()
	jobs, err := loadJobs(jobsPath)
	if err != nil {
		return err
	}
	found := false
	for i := range jobs {
		if jobs[i].ID == job.ID {
			jobs[i] = job
			found = true
			break
		}
	}
	if !found {
		jobs = append(jobs, job)
	}
	return saveJobs(jobsPath, jobs)
}

func findJob(id string) (AnalysisJob, bool, error) {
	jobsMu.Lock()
	defer jobsMu.Unlock()
	jobs, err := loadJobs(jobsPath)
	if err != nil {
		return AnalysisJob{}, false, err
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, true, nil
		}
	}
	return AnalysisJob{}, false, nil
}

// reportPath returns where a finished job's report JSON is stored.
func reportPath(dataDir, jobID string) string {
	return filepath.Join(dataDir, jobID+".report.json")
}
