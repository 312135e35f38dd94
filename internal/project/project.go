package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/bibloom-cli/internal/category"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/KaramelBytes/bibloom-cli/internal/utils"
	"github.com/google/uuid"
)

const (
	projectFileName = utils.ProjectFile
)

// Project is a bibliography workspace persisted on disk.
type Project struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	SortField   string             `json:"sort_field,omitempty"`
	Sources     map[string]*Source `json:"sources"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// Not serialized: on-disk location of the project.json
	rootDir string `json:"-"`
}

// NewProject constructs an in-memory project. Call Save() to persist.
func NewProject(name, description, rootDir string) *Project {
	return &Project{
		Name:        name,
		Description: description,
		Sources:     make(map[string]*Source),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		rootDir:     rootDir,
	}
}

// LoadProject loads a project.json from the provided directory.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, projectFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if p.Sources == nil {
		p.Sources = make(map[string]*Source)
	}
	p.rootDir = dir
	return &p, nil
}

// RootDir returns the on-disk project directory path.
func (p *Project) RootDir() string { return p.rootDir }

// Save writes project.json using atomic write.
func (p *Project) Save() error {
	if p.rootDir == "" {
		return errors.New("project root directory not set")
	}
	if err := utils.EnsureProjectDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, projectFileName), data)
}

// AddSource validates a bibliography or category table and attaches it to
// the project, replacing any previous source of the same kind.
func (p *Project) AddSource(path, description string) (*Source, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &parser.FileNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}

	s := &Source{
		ID:          uuid.NewString(),
		Kind:        kind,
		Path:        abs,
		Name:        filepath.Base(abs),
		Description: description,
		AddedAt:     info.ModTime(),
	}
	switch kind {
	case KindBibliography:
		recs, err := parser.ParseFile(abs, parser.Options{})
		if err != nil {
			return nil, fmt.Errorf("parse bibliography: %w", err)
		}
		s.Entries = len(recs)
	case KindCategories:
		tbl, err := category.LoadTable(abs)
		if err != nil {
			return nil, fmt.Errorf("load category table: %w", err)
		}
		s.Entries = len(tbl.Categories)
	}

	if p.Sources == nil {
		p.Sources = make(map[string]*Source)
	}
	for id, old := range p.Sources {
		if old.Kind == kind {
			delete(p.Sources, id)
		}
	}
	p.Sources[s.ID] = s
	p.UpdatedAt = time.Now()
	return s, nil
}

func (p *Project) source(kind SourceKind) *Source {
	for _, s := range p.Sources {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

// Bibliography returns the bibliography source, or nil.
func (p *Project) Bibliography() *Source { return p.source(KindBibliography) }

// Categories returns the category table source, or nil.
func (p *Project) Categories() *Source { return p.source(KindCategories) }

// SetSortField sets the field records are ordered by.
func (p *Project) SetSortField(field string) {
	p.SortField = strings.TrimSpace(field)
	p.UpdatedAt = time.Now()
}
