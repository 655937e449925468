package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/NaiHeeeee/repkg-gui/internal/extraction"
)

const fileName = "settings.json"

// Settings is everything the application remembers across runs.
type Settings struct {
	OnlyImages         bool   `json:"only_images"`
	NoTexConvert       bool   `json:"no_tex_convert"`
	IgnoreDirStructure bool   `json:"ignore_dir_structure"`
	OverwriteFiles     bool   `json:"overwrite_files"`
	AutoOpenFolder     bool   `json:"auto_open_extract_folder"`
	WorkshopPath       string `json:"workshop_path"`
	ExtractPath        string `json:"extract_path"`
	ExtractPathManual  bool   `json:"extract_path_manual"`
	SortKey            string `json:"sort_key,omitempty"`
	SortDirection      string `json:"sort_direction,omitempty"`
}

// ExtractionOptions converts the persisted switches into an option set.
func (s Settings) ExtractionOptions() extraction.Options {
	return extraction.Options{
		OnlyImages:         s.OnlyImages,
		NoTexConvert:       s.NoTexConvert,
		IgnoreDirStructure: s.IgnoreDirStructure,
		Overwrite:          s.OverwriteFiles,
		AutoOpenFolder:     s.AutoOpenFolder,
	}
}

// Store reads and writes the settings file. Loads tolerate a missing or
// corrupt file by falling back to defaults; saves go through a temp file
// rename so a crash never leaves a half-written settings file.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, fileName)}
}

// Path reports the settings file location.
func (s *Store) Path() string { return s.path }

// Load returns the persisted settings, or defaults when no usable file
// exists. A corrupt file is reported alongside the defaults so the caller
// can decide whether to mention it.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return loaded, nil
}

// Save persists the settings atomically.
func (s *Store) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Update loads, applies mutate, and saves the result.
func (s *Store) Update(mutate func(*Settings)) (Settings, error) {
	current, err := s.Load()
	if err != nil {
		return current, err
	}
	mutate(&current)
	if err := s.Save(current); err != nil {
		return current, err
	}
	return current, nil
}
