package gotype

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/Yamashou/gqldto/shape"
	"github.com/jensneuse/abstractlogger"
	"golang.org/x/mod/semver"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"
)

// DefaultTargetVersion is the first Go version with the any alias and the
// oldest target that gets native field types.
const DefaultTargetVersion = "1.18"

//go:embed declaration.gotpl
var declarationTemplate string

var tmpl = template.Must(template.New("declaration.gotpl").Parse(declarationTemplate))

// Emitter renders a declaration forest as Go source, one file per
// declaration, into a single package named after the root namespace.
type Emitter struct {
	rootNamespace string
	outputDir     string
	packageName   string
	pkg           *types.Package
	native        bool
	logger        abstractlogger.Logger
}

func NewEmitter(rootNamespace, outputDir, targetVersion string, logger abstractlogger.Logger) (*Emitter, error) {
	native, err := NativeTypes(targetVersion)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = abstractlogger.NoopLogger
	}

	packageName := PackageName(rootNamespace)

	return &Emitter{
		rootNamespace: rootNamespace,
		outputDir:     outputDir,
		packageName:   packageName,
		pkg:           types.NewPackage(rootNamespace, packageName),
		native:        native,
		logger:        logger,
	}, nil
}

// NativeTypes reports whether targetVersion supports native field types.
// Versions are Go versions with or without the go or v prefix.
func NativeTypes(targetVersion string) (bool, error) {
	version := "v" + strings.TrimPrefix(strings.TrimPrefix(targetVersion, "go"), "v")
	if !semver.IsValid(version) {
		return false, fmt.Errorf("invalid target version %q", targetVersion)
	}

	return semver.Compare(version, "v"+DefaultTargetVersion) >= 0, nil
}

// PackageName derives a Go package name from the last segment of namespace.
// Segments that are no valid package name on their own, such as keywords,
// get a generated prefix.
func PackageName(namespace string) string {
	segment := namespace[strings.LastIndex(namespace, "/")+1:]
	segment = cases.Lower(language.Und).String(segment)

	name := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, segment)

	if name == "" || name == "_" || unicode.IsDigit([]rune(name)[0]) || token.IsKeyword(name) {
		return "generated" + name
	}

	return name
}

func (e *Emitter) Dir() string {
	return filepath.Join(e.outputDir, filepath.FromSlash(e.rootNamespace))
}

func (e *Emitter) TypeName(id shape.DeclarationID) string {
	return typeName(e.rootNamespace, id)
}

// Path returns the file a declaration is written to: its lower-cased type
// name with a _gen suffix, which keeps names like Q_Test or Q_Linux from
// being read as test or build-constrained files. Equal ids share a path.
func (e *Emitter) Path(id shape.DeclarationID) string {
	return filepath.Join(e.Dir(), strings.ToLower(e.TypeName(id))+"_gen.go")
}

// PathCollisions returns the ids written to a file that an earlier, distinct
// id of forest is written to as well, in forest order. Their type names
// differ at most in case.
func (e *Emitter) PathCollisions(forest *shape.Forest) []shape.DeclarationID {
	owners := make(map[string]shape.DeclarationID)
	seen := make(map[shape.DeclarationID]struct{})

	var collisions []shape.DeclarationID
	for _, declaration := range forest.Declarations() {
		path := e.Path(declaration.ID)
		owner, ok := owners[path]
		if !ok {
			owners[path] = declaration.ID
			continue
		}
		if owner == declaration.ID {
			continue
		}

		if _, ok := seen[declaration.ID]; !ok {
			seen[declaration.ID] = struct{}{}
			collisions = append(collisions, declaration.ID)
		}
	}

	return collisions
}

// Render returns the formatted source of one declaration of forest.
func (e *Emitter) Render(forest *shape.Forest, declaration *shape.Declaration) ([]byte, error) {
	binder := NewBinder(e.rootNamespace, e.pkg, forest, e.native)
	source, err := NewDeclarationSource(e.packageName, binder, declaration)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, source); err != nil {
		return nil, fmt.Errorf("template failed for %s: %w", declaration.ID, err)
	}

	path := e.Path(declaration.ID)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("go imports %s: %w", path, err)
	}

	return formatted, nil
}

// Emit renders every declaration and then writes them in forest order, so a
// declaration registered again overwrites the earlier file. Nothing is
// written if any declaration fails to render. It returns the distinct paths
// written, in the order they were first written.
func (e *Emitter) Emit(forest *shape.Forest) ([]string, error) {
	type file struct {
		path string
		src  []byte
	}

	files := make([]file, 0, forest.Len())
	for _, declaration := range forest.Declarations() {
		src, err := e.Render(forest, declaration)
		if err != nil {
			return nil, err
		}
		files = append(files, file{path: e.Path(declaration.ID), src: src})
	}

	if err := os.MkdirAll(e.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if err := os.WriteFile(f.path, f.src, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		e.logger.Debug("wrote declaration", abstractlogger.String("path", f.path))

		if _, ok := seen[f.path]; !ok {
			seen[f.path] = struct{}{}
			written = append(written, f.path)
		}
	}

	return written, nil
}
