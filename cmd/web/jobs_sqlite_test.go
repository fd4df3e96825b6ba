package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadJobs_SQLite(t *testing.T) {
	f := filepath.Join(t.TempDir(), "jobs.db")

	if err := initJobsStore("sqlite", f); err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() {
		jobsDB.Close()
		jobsDB = nil
		jobsStore = "json"
	}()

	now := time.Now().UTC().Truncate(time.Second)
	jobs := []AnalysisJob{{ID: "j1", SequenceID: "seq1", State: "queued", CreatedAt: now, UpdatedAt: now}}
	if err := saveJobs(f, jobs); err != nil {
		t.Fatalf("saveJobs failed: %v", err)
	}
	loaded, err := loadJobs(f)
	if err != nil {
		t.Fatalf("loadJobs failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "j1" {
		t.Fatalf("unexpected loaded jobs: %#v", loaded)
	}
	if !loaded[0].CreatedAt.Equal(now) {
		t.Fatalf("created_at roundtrip mismatch: %v vs %v", loaded[0].CreatedAt, now)
	}
}
