package swanjson

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/model"
	"github.com/matzehuels/swanview/pkg/swan"
)

// Parser decodes JSON interchange sources into module trees. The zero
// value is ready to use; it implements [model.Parser].
type Parser struct{}

// Parse reads src completely and builds its module. The source's own
// metadata fills gaps in the document: a document without a module
// path takes the source name, and the interface flag of the source
// wins when the document leaves it unset.
func (Parser) Parse(src model.Source) (*swan.Module, error) {
	r, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read %s", src.Name())
	}

	var doc ModuleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode %s", src.Name())
	}
	if doc.Module == "" {
		doc.Module = src.Name()
	}
	doc.Interface = doc.Interface || src.Interface()

	mod, err := doc.Build()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "build %s", src.Name())
	}
	return mod, nil
}

// Decode builds a module directly from interchange bytes.
func Decode(data []byte) (*swan.Module, error) {
	var doc ModuleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode module document")
	}
	return doc.Build()
}

// Encode renders a module tree as indented interchange bytes.
func Encode(m *swan.Module) ([]byte, error) {
	data, err := json.MarshalIndent(Document(m), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode module %s", m.FullPath())
	}
	return data, nil
}
