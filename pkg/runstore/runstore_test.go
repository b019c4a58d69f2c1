package runstore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Begin("unsheltered.csv")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusRunning {
		t.Errorf("status = %q, want %q", got.Status, StatusRunning)
	}
	if got.Source != "unsheltered.csv" {
		t.Errorf("source = %q", got.Source)
	}

	err = s.Finish(id, Run{
		Region:     "new-england",
		Confidence: 1,
		NameMode:   "complete",
		Households: 12,
		Persons:    31,
		Likely:     2,
		NoName:     1,
	})
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	got, err = s.Get(id)
	if err != nil {
		t.Fatalf("Get after finish: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Errorf("status = %q, want %q", got.Status, StatusCompleted)
	}
	if got.Region != "new-england" || got.Households != 12 || got.Persons != 31 || got.Likely != 2 {
		t.Errorf("unexpected run %+v", got)
	}
	if got.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}
}

func TestFailRun(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Begin("broken.csv")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := s.Fail(id, "no mappable columns"); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusFailed {
		t.Errorf("status = %q, want %q", got.Status, StatusFailed)
	}
	if got.Error == nil || *got.Error != "no mappable columns" {
		t.Errorf("error = %v", got.Error)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	s := openTestStore(t)
	if err := s.Finish("no-such-id", Run{}); err == nil {
		t.Error("Finish on unknown id: want error")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)

	var ids []string
	for _, src := range []string{"a.csv", "b.csv", "c.csv"} {
		id, err := s.Begin(src)
		if err != nil {
			t.Fatalf("Begin %s: %v", src, err)
		}
		ids = append(ids, id)
	}

	runs, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len = %d, want 3", len(runs))
	}

	limited, err := s.List(2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
}
