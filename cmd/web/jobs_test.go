package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestJSONSaveLoadJobs(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "jobs.json")
	jobsStore = "json"
	jobsPath = tmp

	jobs := []AnalysisJob{{ID: "j1", SequenceID: "seq1", State: "queued", CreatedAt: time.Now(), UpdatedAt: time.Now()}}
	if err := saveJobs(tmp, jobs); err != nil {
		t.Fatalf("saveJobs failed: %v", err)
	}
	got, err := loadJobs(tmp)
	if err != nil {
		t.Fatalf("loadJobs failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "j1" {
		t.Fatalf("unexpected jobs loaded: %#v", got)
	}
}

func TestJSONLoadJobsMissingFile(t *testing.T) {
	jobsStore = "json"
	jobsPath = filepath.Join(t.TempDir(), "absent.json")
	got, err := loadJobs(jobsPath)
	if err != nil {
		t.Fatalf("loadJobs on missing file: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no jobs, got %#v", got)
	}
}

func TestUpsertJobReplacesByID(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "jobs.json")
	jobsStore = "json"
	jobsPath = tmp

	now := time.Now().UTC()
	if err := upsertJob(AnalysisJob{ID: "j1", State: "queued", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("upsert queued: %v", err)
	}
	if err := upsertJob(AnalysisJob{ID: "j1", State: "done", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("upsert done: %v", err)
	}
	job, ok, err := findJob("j1")
	if err != nil || !ok {
		t.Fatalf("findJob: ok=%v err=%v", ok, err)
	}
	if job.State != "done" {
		t.Fatalf("expected replaced state done, got %q", job.State)
	}
	jobs, _ := loadJobs(tmp)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job after upsert, got %d", len(jobs))
	}
}
