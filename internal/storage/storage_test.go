package storage

import (
	"path/filepath"
	"testing"

	"tripletmatch/internal/models"
)

func TestNewStorage(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewStorage(dbPath)
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("db should not be nil")
	}
}

func TestNewStorage_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	store, err := NewStorage(dbPath)
	if err != nil {
		t.Fatalf("NewStorage failed to create directories: %v", err)
	}
	defer store.Close()
}

func TestRecordRun_AndListRuns(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStorage(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	defer store.Close()

	rec := &models.RunRecord{
		SourceDir:    "/data/src",
		Folder1:      "/data/cam1",
		Folder2:      "/data/cam2",
		DestDir:      "/data/out",
		TotalSources: 10,
		TotalMatches: 7,
		TotalSkipped: 3,
	}
	groups := []*models.MatchGroup{
		{Index: 0, Identifier: "000", SourcePath: "/data/src/a00012345.jpg",
			Folder1Path: "/data/cam1/b00054321.jpg", Folder2Path: "/data/cam2/c00099999.jpg"},
		{Index: 1, Identifier: "001", SourcePath: "/data/src/a00112345.jpg",
			Folder1Path: "/data/cam1/b00154321.jpg", Folder2Path: "/data/cam2/c00199999.jpg"},
	}

	runID, err := store.RecordRun(rec, groups)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if runID == 0 {
		t.Error("expected non-zero run ID")
	}

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.SourceDir != rec.SourceDir || got.DestDir != rec.DestDir {
		t.Errorf("run = %+v, want dirs from %+v", got, rec)
	}
	if got.TotalSources != 10 || got.TotalMatches != 7 || got.TotalSkipped != 3 {
		t.Errorf("run totals = %d/%d/%d, want 10/7/3",
			got.TotalSources, got.TotalMatches, got.TotalSkipped)
	}
}

func TestGroupsForRun(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStorage(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	defer store.Close()

	groups := []*models.MatchGroup{
		{Index: 1, Identifier: "001", SourcePath: "/s/b.jpg", Folder1Path: "/1/b.jpg", Folder2Path: "/2/b.jpg"},
		{Index: 0, Identifier: "000", SourcePath: "/s/a.jpg", Folder1Path: "/1/a.jpg", Folder2Path: "/2/a.jpg"},
	}
	runID, err := store.RecordRun(&models.RunRecord{}, groups)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	got, err := store.GroupsForRun(runID)
	if err != nil {
		t.Fatalf("GroupsForRun failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	// Returned in group-index order regardless of insertion order.
	if got[0].Index != 0 || got[0].Identifier != "000" {
		t.Errorf("first group = %+v, want index 0", got[0])
	}
	if got[1].Index != 1 || got[1].Identifier != "001" {
		t.Errorf("second group = %+v, want index 1", got[1])
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStorage(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	defer store.Close()

	if _, err := store.RecordRun(&models.RunRecord{SourceDir: "/first"}, nil); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if _, err := store.RecordRun(&models.RunRecord{SourceDir: "/second"}, nil); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].SourceDir != "/second" {
		t.Errorf("first listed run = %s, want /second", runs[0].SourceDir)
	}
}
