package highscore

import (
	"sync"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	m, err := gdata.Open(gdata.Config{AppName: "cosmicdefender_test"})
	if err != nil {
		t.Fatalf("failed to open gdata manager: %v", err)
	}
	return m
}

func TestGdataStoreRoundTrip(t *testing.T) {
	m := openTestManager(t)

	s := NewGdataStore(m)
	if !s.Persistent() {
		t.Fatal("store with a manager should be persistent")
	}
	if score, err := s.Load(); err != nil || score != 0 {
		t.Fatalf("empty store Load() = %d, %v", score, err)
	}

	if err := s.Save(1200); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save(800); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reopened := NewGdataStore(m)
	score, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if score != 1200 {
		t.Errorf("reloaded score = %d, want 1200", score)
	}
	rec, err := reopened.Record()
	if err != nil || rec.Achieved.IsZero() {
		t.Errorf("record = %+v, %v", rec, err)
	}
}

func TestGdataStoreCorruptRecord(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(recordObject, recordProperty, []byte("score: [not a number")); err != nil {
		t.Fatal(err)
	}

	s := NewGdataStore(m)
	if _, err := s.Load(); err == nil {
		t.Error("expected an error for a corrupt record")
	}
	if err := s.Save(50); err != nil {
		t.Fatalf("Save() over a corrupt record: %v", err)
	}
	if score, err := NewGdataStore(m).Load(); err != nil || score != 50 {
		t.Errorf("Load() after overwrite = %d, %v", score, err)
	}
}

func TestGdataStoreDegraded(t *testing.T) {
	s := NewGdataStore(nil)
	if s.Persistent() {
		t.Error("nil manager should not be persistent")
	}
	if err := s.Save(300); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if score, err := s.Load(); err != nil || score != 300 {
		t.Errorf("Load() = %d, %v, want 300", score, err)
	}
}

func TestMemoryStore(t *testing.T) {
	testCases := []struct {
		name  string
		start int
		saves []int
		want  int
	}{
		{"empty", 0, nil, 0},
		{"negative start", -5, nil, 0},
		{"keeps best", 100, []int{50, 400, 200}, 400},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewMemoryStore(tc.start)
			for _, v := range tc.saves {
				if err := s.Save(v); err != nil {
					t.Fatal(err)
				}
			}
			if got, _ := s.Load(); got != tc.want {
				t.Errorf("Load() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStoresConcurrentSaves(t *testing.T) {
	stores := map[string]Store{
		"memory":   NewMemoryStore(0),
		"degraded": NewGdataStore(nil),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 1; i <= 50; i++ {
				wg.Add(1)
				go func(v int) {
					defer wg.Done()
					_ = s.Save(v * 10)
				}(i)
			}
			wg.Wait()
			if got, _ := s.Load(); got != 500 {
				t.Errorf("Load() = %d, want 500", got)
			}
		})
	}
}
