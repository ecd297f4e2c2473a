// Package template loads and watches slot templates. Templates are YAML
// or JSON files in a directory; each is schema-validated and semantically
// checked at load so the resolution core never sees a malformed template.
package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/pagefit/pagefit/internal/schema"
	"github.com/pagefit/pagefit/internal/types"
)

// ErrNotFound is returned when a named template is not loaded.
var ErrNotFound = errors.New("template not found")

// Store holds the loaded templates and hot-reloads them when the template
// directory changes.
type Store struct {
	mu        sync.RWMutex
	dir       string
	logger    *slog.Logger
	templates map[string]*types.Template
	callbacks []func(*types.Template)
}

// NewStore loads every template in dir. Files that fail validation are
// logged and skipped; an unreadable directory is an error.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		dir:       dir,
		logger:    logger,
		templates: make(map[string]*types.Template),
	}
	if err := s.loadAll(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read template dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		if err := s.loadFile(filepath.Join(s.dir, e.Name())); err != nil {
			s.logger.Warn("skipping template", "file", e.Name(), "error", err)
		}
	}
	return nil
}

func isTemplateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// loadFile parses, validates, and registers one template file.
func (s *Store) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.templates[tmpl.Name] = tmpl
	callbacks := make([]func(*types.Template), len(s.callbacks))
	copy(callbacks, s.callbacks)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(tmpl)
	}

	s.logger.Debug("template loaded", "name", tmpl.Name, "slots", len(tmpl.Slots), "file", filepath.Base(path))
	return nil
}

// Parse validates and decodes template bytes. YAML input is converted to
// JSON so the same schema governs both formats.
func Parse(data []byte, isJSON bool) (*types.Template, error) {
	jsonData := data
	if !isJSON {
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse template YAML: %w", err)
		}
		var err error
		jsonData, err = json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("failed to convert template to JSON: %w", err)
		}
	}

	if err := schema.ValidateTemplate(jsonData); err != nil {
		return nil, err
	}

	var tmpl types.Template
	if err := json.Unmarshal(jsonData, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to decode template: %w", err)
	}
	if err := validateSemantics(&tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// validateSemantics applies the checks the JSON schema cannot express.
func validateSemantics(tmpl *types.Template) error {
	seen := make(map[string]bool, len(tmpl.Slots))
	for i := range tmpl.Slots {
		slot := &tmpl.Slots[i]
		if seen[slot.Name] {
			return fmt.Errorf("duplicate slot name %q", slot.Name)
		}
		seen[slot.Name] = true
		if slot.PatchPolicy == "" {
			slot.PatchPolicy = types.PatchSimpleReplace
		}
		if !slot.PatchPolicy.Valid() {
			return fmt.Errorf("slot %q: unknown patch policy %q", slot.Name, slot.PatchPolicy)
		}
	}
	for _, z := range tmpl.Zones {
		if z.YEnd <= z.YStart {
			return fmt.Errorf("zone %q: y_end (%v) must be greater than y_start (%v)", z.Name, z.YEnd, z.YStart)
		}
	}
	return nil
}

// Get returns a loaded template by name.
func (s *Store) Get(name string) (*types.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return tmpl, nil
}

// Names returns the loaded template names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnChange registers a callback invoked when a template is reloaded.
func (s *Store) OnChange(fn func(*types.Template)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// Watch reloads templates as files change until ctx is cancelled.
// Validation failures keep the previously loaded version active.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch template dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isTemplateFile(event.Name) {
				continue
			}
			if err := s.loadFile(event.Name); err != nil {
				s.logger.Warn("template reload failed", "file", filepath.Base(event.Name), "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("template watcher error", "error", err)
		}
	}
}
