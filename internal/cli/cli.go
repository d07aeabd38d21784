package cli

import (
	"context"
	"strings"

	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/model"
	"github.com/matzehuels/swanview/pkg/swan"
	"github.com/matzehuels/swanview/pkg/swanjson"
)

// openModel loads the project at path (a directory or a swanproj.toml)
// and parses every source, logging progress.
func openModel(ctx context.Context, path string) (*model.Model, *model.Project, error) {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	m, proj, err := model.Open(path, swanjson.Parser{})
	if err != nil {
		return nil, nil, err
	}
	logger.Debugf("Project %s: %d sources", proj.Name, len(m.Sources()))

	if err := m.LoadAll(); err != nil {
		return nil, nil, err
	}
	p.done("Loaded " + proj.Name)
	return m, proj, nil
}

// splitOperatorRef splits "module::path::Operator" into the module path
// and the operator name.
func splitOperatorRef(ref string) (modPath, opName string, err error) {
	cut := strings.LastIndex(ref, "::")
	if cut < 1 || cut+2 >= len(ref) {
		return "", "", errors.New(errors.ErrCodeMalformedName,
			"operator reference %q (want module::Operator)", ref)
	}
	return ref[:cut], ref[cut+2:], nil
}

// findDiagrams loads the referenced operator and returns the diagram
// sections of its body.
func findDiagrams(m *model.Model, ref string) (*swan.Operator, []*swan.Diagram, error) {
	modPath, opName, err := splitOperatorRef(ref)
	if err != nil {
		return nil, nil, err
	}
	mod, err := m.ModuleByPath(modPath)
	if err != nil {
		return nil, nil, err
	}
	op := mod.Operator(opName)
	if op == nil {
		return nil, nil, errors.New(errors.ErrCodeNameNotFound,
			"no operator %q in module %s", opName, modPath)
	}
	if !op.HasBody() {
		return op, nil, nil
	}
	var diagrams []*swan.Diagram
	for _, sec := range op.Body().Sections {
		if d, ok := sec.(*swan.Diagram); ok {
			diagrams = append(diagrams, d)
		}
	}
	return op, diagrams, nil
}
