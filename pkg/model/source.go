package model

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/swanview/pkg/errors"
)

// Source is one loadable compilation unit: a module body (.swan) or a
// module interface (.swani).
type Source interface {
	// Name identifies the source, typically the module path it holds.
	Name() string
	// Interface reports whether the source holds an interface view.
	Interface() bool
	// Open returns the source content for parsing.
	Open() (io.ReadCloser, error)
}

// Source file extensions.
const (
	BodyExt      = ".swan"
	InterfaceExt = ".swani"
)

// FileSource is a source backed by a file on disk. The module path is
// derived from the file name: "engine-ctrl.swan" holds engine::ctrl.
type FileSource struct {
	Path string
}

// NewFileSource validates the extension and returns the source.
func NewFileSource(path string) (*FileSource, error) {
	switch filepath.Ext(path) {
	case BodyExt, InterfaceExt:
		return &FileSource{Path: path}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidSource,
			"unsupported extension %q (want %s or %s)", filepath.Ext(path), BodyExt, InterfaceExt)
	}
}

// Name returns the module path held by the file, '-' separators in the
// base name standing for '::'.
func (s *FileSource) Name() string {
	base := filepath.Base(s.Path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "-", "::")
}

// Interface reports whether the file is a .swani interface.
func (s *FileSource) Interface() bool {
	return filepath.Ext(s.Path) == InterfaceExt
}

// Open opens the underlying file.
func (s *FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open %s", s.Path)
	}
	return f, nil
}

// StringSource is an in-memory source, used by tests and by callers
// assembling content on the fly. An unnamed source gets a unique name.
type StringSource struct {
	Content string
	ModPath string
	Itf     bool
}

// NewStringSource builds an in-memory source for the given module path.
// An empty path is replaced by a generated unique name.
func NewStringSource(content, modPath string, itf bool) *StringSource {
	if modPath == "" {
		modPath = "mem_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return &StringSource{Content: content, ModPath: modPath, Itf: itf}
}

func (s *StringSource) Name() string    { return s.ModPath }
func (s *StringSource) Interface() bool { return s.Itf }

func (s *StringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.Content)), nil
}
