package sequencer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Southclaws/fault/ftag"
)

// fixedClock returns successive seconds from a base time
func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) *Store {
	s := NewStore(filepath.Join(t.TempDir(), "projects"))
	s.Now = fixedClock()
	return s
}

func TestStoreEmpty(t *testing.T) {
	s := newTestStore(t)

	projects, err := s.ListProjects()
	if err != nil || len(projects) != 0 {
		t.Errorf("Expected no projects, got %v %v", projects, err)
	}
	saves, err := s.ListSaves("nothing")
	if err != nil || len(saves) != 0 {
		t.Errorf("Expected no saves, got %v %v", saves, err)
	}
}

func TestStoreSaveAndLoadNewest(t *testing.T) {
	s := newTestStore(t)
	e, id := newTestEngine(t)

	first, err := s.Save("song", "", e)
	if err != nil {
		t.Fatal(err)
	}
	if first != "2024-01-15_14-30-01.json" {
		t.Errorf("unexpected filename %s", first)
	}

	e.WithTrack(id, func(tr *Track) error { tr.Name = "renamed"; return nil })
	second, err := s.Save("song", "take two", e)
	if err != nil {
		t.Fatal(err)
	}
	if second != "2024-01-15_14-30-02_take-two.json" {
		t.Errorf("unexpected filename %s", second)
	}

	saves, err := s.ListSaves("song")
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 2 || saves[0].Filename != second || saves[0].Name != "take-two" {
		t.Errorf("Expected newest first, got %+v", saves)
	}

	loaded := NewEngine(testSampleRate, testBPM)
	if err := s.Load("song", "", loaded); err != nil {
		t.Fatal(err)
	}
	if tr, _ := loaded.Track(id); tr == nil || tr.Name != "renamed" {
		t.Errorf("Expected the newest save, got %+v", tr)
	}

	if err := s.Load("song", first, loaded); err != nil {
		t.Fatal(err)
	}
	if tr, _ := loaded.Track(id); tr == nil || tr.Name != "lead" {
		t.Errorf("Expected the first save, got %+v", tr)
	}
}

func TestStoreDefaultProject(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save("", "", NewEngine(testSampleRate, testBPM)); err != nil {
		t.Fatal(err)
	}
	projects, _ := s.ListProjects()
	if len(projects) != 1 || projects[0] != DefaultProject {
		t.Errorf("Expected [%s], got %v", DefaultProject, projects)
	}
}

func TestStoreLoadWithoutSaves(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateProject("empty"); err != nil {
		t.Fatal(err)
	}
	err := s.Load("empty", "", NewEngine(testSampleRate, testBPM))
	if !errors.Is(err, ErrNoSaves) {
		t.Errorf("Expected ErrNoSaves, got %v", err)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	err := s.Load("song", "2024-01-01_00-00-00.json", NewEngine(testSampleRate, testBPM))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a wrapped not-exist error, got %v", err)
	}
}

func TestStoreLoadCorruptSave(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateProject("bad"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(s.ProjectDir("bad"), "2024-01-01_00-00-00.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	err := s.Load("bad", "", NewEngine(testSampleRate, testBPM))
	if err == nil {
		t.Fatal("Expected a parse error")
	}
	if ftag.Get(err) != ftag.InvalidArgument {
		t.Errorf("Expected InvalidArgument tag, got %v", ftag.Get(err))
	}
}

func TestStoreListSkipsForeignFiles(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateProject("song"); err != nil {
		t.Fatal(err)
	}
	dir := s.ProjectDir("song")
	for _, name := range []string{"notes.txt", "backup.json", "2024-01-01_00-00-00x.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	saves, err := s.ListSaves("song")
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 0 {
		t.Errorf("Expected foreign files skipped, got %+v", saves)
	}
}

func TestStoreRenameAndDeleteSave(t *testing.T) {
	s := newTestStore(t)
	filename, err := s.Save("song", "", NewEngine(testSampleRate, testBPM))
	if err != nil {
		t.Fatal(err)
	}

	renamed, err := s.RenameSave("song", filename, "final mix")
	if err != nil {
		t.Fatal(err)
	}
	if renamed != "2024-01-15_14-30-01_final-mix.json" {
		t.Errorf("unexpected renamed file %s", renamed)
	}

	if _, err := s.RenameSave("song", "junk.json", "x"); ftag.Get(err) != ftag.InvalidArgument {
		t.Errorf("Expected InvalidArgument, got %v", err)
	}

	if err := s.DeleteSave("song", renamed); err != nil {
		t.Fatal(err)
	}
	if saves, _ := s.ListSaves("song"); len(saves) != 0 {
		t.Errorf("Expected no saves, got %+v", saves)
	}
}

func TestStoreRenameAndDeleteProject(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateProject("old"); err != nil {
		t.Fatal(err)
	}
	if err := s.RenameProject("old", "new"); err != nil {
		t.Fatal(err)
	}
	projects, _ := s.ListProjects()
	if len(projects) != 1 || projects[0] != "new" {
		t.Errorf("Expected [new], got %v", projects)
	}

	if err := s.DeleteProject("new"); err != nil {
		t.Fatal(err)
	}
	if projects, _ := s.ListProjects(); len(projects) != 0 {
		t.Errorf("Expected no projects, got %v", projects)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"my song", "my-song"},
		{"a/b\\c:d", "a-b-c-d"},
		{`what?"*<>|`, "what"},
		{"../escape", "-escape"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
