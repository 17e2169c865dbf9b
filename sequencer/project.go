package sequencer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"go-midifx/debug"
)

// Save filenames: 2006-01-02_15-04-05.json or 2006-01-02_15-04-05_name.json
const saveTimeLayout = "2006-01-02_15-04-05"

// DefaultProject is used when a save names no project
const DefaultProject = "untitled"

// SaveInfo represents a saved project file (for listing)
type SaveInfo struct {
	Filename  string
	Name      string // parsed from filename (empty if unnamed)
	Timestamp time.Time
}

// Store keeps projects as folders of timestamped JSON saves under Root
type Store struct {
	Root string
	Now  func() time.Time // nil = time.Now
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{Root: dir}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ProjectDir returns the path to a specific project
func (s *Store) ProjectDir(project string) string {
	return filepath.Join(s.Root, sanitizeFilename(project))
}

// ListProjects returns all project folder names
func (s *Store) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fault.Wrap(err, fmsg.With("list projects"))
	}

	projects := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			projects = append(projects, entry.Name())
		}
	}

	sort.Strings(projects)
	return projects, nil
}

// parseSaveName splits a save filename into timestamp and name
func parseSaveName(filename string) (time.Time, string, bool) {
	if !strings.HasSuffix(filename, ".json") {
		return time.Time{}, "", false
	}
	base := strings.TrimSuffix(filename, ".json")
	if len(base) < len(saveTimeLayout) {
		return time.Time{}, "", false
	}

	ts, err := time.Parse(saveTimeLayout, base[:len(saveTimeLayout)])
	if err != nil {
		return time.Time{}, "", false
	}

	rest := base[len(saveTimeLayout):]
	switch {
	case rest == "":
		return ts, "", true
	case rest[0] == '_' && len(rest) > 1:
		return ts, rest[1:], true
	}
	return time.Time{}, "", false
}

// ListSaves returns timestamped saves for a project, newest first
func (s *Store) ListSaves(project string) ([]SaveInfo, error) {
	entries, err := os.ReadDir(s.ProjectDir(project))
	if err != nil {
		if os.IsNotExist(err) {
			return []SaveInfo{}, nil
		}
		return nil, fault.Wrap(err, fmsg.With("list saves"))
	}

	saves := []SaveInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, name, ok := parseSaveName(entry.Name())
		if !ok {
			continue
		}
		saves = append(saves, SaveInfo{
			Filename:  entry.Name(),
			Name:      name,
			Timestamp: ts,
		})
	}

	// Newest first; same-second saves by filename
	sort.Slice(saves, func(i, j int) bool {
		if !saves[i].Timestamp.Equal(saves[j].Timestamp) {
			return saves[i].Timestamp.After(saves[j].Timestamp)
		}
		return saves[i].Filename > saves[j].Filename
	})

	return saves, nil
}

// Save writes the engine state to the project with a timestamped
// filename and returns that filename. name is optional.
func (s *Store) Save(project, name string, e *Engine) (string, error) {
	if project == "" {
		project = DefaultProject
	}

	dir := s.ProjectDir(project)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fault.Wrap(err, fmsg.With("create project folder"))
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", fault.Wrap(err, fmsg.With("serialize project"))
	}

	filename := s.now().Format(saveTimeLayout)
	if name = sanitizeFilename(name); name != "" {
		filename += "_" + name
	}
	filename += ".json"

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fault.Wrap(err, fmsg.WithDesc("write save", "Could not write "+filename))
	}

	debug.Log("store", "saved %s/%s (%d bytes)", project, filename, len(data))
	return filename, nil
}

// Load reads a save (the newest if filename is empty) into the engine
func (s *Store) Load(project, filename string, e *Engine) error {
	if filename == "" {
		saves, err := s.ListSaves(project)
		if err != nil {
			return err
		}
		if len(saves) == 0 {
			return fault.Wrap(ErrNoSaves,
				fmsg.WithDesc(fmt.Sprintf("project %s", project), "This project has no saves yet"),
				ftag.With(ftag.NotFound),
			)
		}
		filename = saves[0].Filename // saves are sorted newest first
	}

	data, err := os.ReadFile(filepath.Join(s.ProjectDir(project), filename))
	if err != nil {
		return fault.Wrap(err, fmsg.WithDesc("read save", "Could not read "+filename))
	}

	if err := json.Unmarshal(data, e); err != nil {
		return fault.Wrap(err,
			fmsg.WithDesc("parse save", "Could not load "+filename),
			ftag.With(ftag.InvalidArgument),
		)
	}

	debug.Log("store", "loaded %s/%s", project, filename)
	return nil
}

// CreateProject creates a new empty project folder
func (s *Store) CreateProject(project string) error {
	if err := os.MkdirAll(s.ProjectDir(project), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create project"))
	}
	return nil
}

// DeleteSave deletes a specific save file
func (s *Store) DeleteSave(project, filename string) error {
	if err := os.Remove(filepath.Join(s.ProjectDir(project), filepath.Base(filename))); err != nil {
		return fault.Wrap(err, fmsg.With("delete save"))
	}
	return nil
}

// RenameSave renames a save file (changes the name part, keeps timestamp)
func (s *Store) RenameSave(project, oldFilename, newName string) (string, error) {
	ts, _, ok := parseSaveName(oldFilename)
	if !ok {
		return "", fault.New("invalid save filename "+oldFilename, ftag.With(ftag.InvalidArgument))
	}

	newFilename := ts.Format(saveTimeLayout)
	if safe := sanitizeFilename(newName); safe != "" {
		newFilename += "_" + safe
	}
	newFilename += ".json"

	dir := s.ProjectDir(project)
	if err := os.Rename(filepath.Join(dir, oldFilename), filepath.Join(dir, newFilename)); err != nil {
		return "", fault.Wrap(err, fmsg.With("rename save"))
	}
	return newFilename, nil
}

// DeleteProject deletes entire project folder
func (s *Store) DeleteProject(project string) error {
	if err := os.RemoveAll(s.ProjectDir(project)); err != nil {
		return fault.Wrap(err, fmsg.With("delete project"))
	}
	return nil
}

// RenameProject renames a project folder
func (s *Store) RenameProject(oldName, newName string) error {
	if err := os.Rename(s.ProjectDir(oldName), s.ProjectDir(newName)); err != nil {
		return fault.Wrap(err, fmsg.With("rename project"))
	}
	return nil
}

// sanitizeFilename removes/replaces characters that are problematic in filenames
func sanitizeFilename(name string) string {
	return strings.NewReplacer(
		" ", "-",
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
		"..", "",
	).Replace(strings.TrimSpace(name))
}
