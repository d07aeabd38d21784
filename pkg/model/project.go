package model

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/swanview/pkg/errors"
)

// ManifestName is the project manifest looked up in a project root.
const ManifestName = "swanproj.toml"

// Project describes a swanproj.toml manifest: the project name and the
// directories holding its Swan sources.
type Project struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	SourceDirs  []string `toml:"sources"`
	Description string   `toml:"description"`

	root string
}

// LoadProject reads a manifest from path, which may be the manifest
// file itself or a directory containing one.
func LoadProject(path string) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "stat %s", path)
	}
	if info.IsDir() {
		path = filepath.Join(path, ManifestName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "read %s", path)
	}
	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "parse %s", path)
	}
	if p.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidProject, "%s: missing project name", path)
	}
	p.root = filepath.Dir(path)
	if len(p.SourceDirs) == 0 {
		p.SourceDirs = []string{"."}
	}
	return &p, nil
}

// Root returns the directory holding the manifest.
func (p *Project) Root() string { return p.root }

// Sources walks the project's source directories and returns a
// FileSource for every .swan and .swani file, sorted by path.
func (p *Project) Sources() ([]Source, error) {
	var srcs []Source
	for _, dir := range p.SourceDirs {
		root := filepath.Join(p.root, dir)
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasPrefix(filepath.Ext(path), ".swan") {
				return nil
			}
			src, err := NewFileSource(path)
			if err != nil {
				return nil // other .swan* extensions are not sources
			}
			srcs = append(srcs, src)
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "walk %s", root)
		}
	}
	sort.Slice(srcs, func(i, j int) bool {
		return srcs[i].(*FileSource).Path < srcs[j].(*FileSource).Path
	})
	return srcs, nil
}

// Open loads the project manifest at path and returns a model over its
// sources, parsed with parser. Sources are registered but not parsed.
func Open(path string, parser Parser) (*Model, *Project, error) {
	proj, err := LoadProject(path)
	if err != nil {
		return nil, nil, err
	}
	srcs, err := proj.Sources()
	if err != nil {
		return nil, nil, err
	}
	m := New(parser)
	m.AddSource(srcs...)
	return m, proj, nil
}
