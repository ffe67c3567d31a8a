package generator

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Yamashou/gqldto/config"
	"github.com/Yamashou/gqldto/gotype"
	"github.com/Yamashou/gqldto/queryparser"
	"github.com/Yamashou/gqldto/shape"
	"github.com/jensneuse/abstractlogger"
	"github.com/vektah/gqlparser/v2/ast"
)

// NameCollisionError is returned when distinct declarations resolve to the
// same id or the same output file and the config asks to fail instead of
// overwriting.
type NameCollisionError struct {
	IDs []shape.DeclarationID
}

func (e *NameCollisionError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, id.String())
	}

	return fmt.Sprintf("declaration name collision: %s", strings.Join(ids, ", "))
}

// Generate loads the schema and query document of cfg, resolves the first
// operation and writes one Go file per declaration. Resolution completes
// before the first file is written.
func Generate(ctx context.Context, cfg *config.Config, logger abstractlogger.Logger) ([]string, error) {
	if logger == nil {
		logger = abstractlogger.NoopLogger
	}

	emitter, err := gotype.NewEmitter(cfg.Namespace, cfg.Output, cfg.TargetVersion, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid target version: %w", err)
	}

	if cfg.Schema == nil {
		if err := cfg.LoadSchema(); err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
	}
	logger.Debug("schema loaded", abstractlogger.Int("types", len(cfg.Schema.Types)))

	queryDocument, err := loadQueryDocument(cfg)
	if err != nil {
		return nil, err
	}

	forest, err := resolve(cfg, queryDocument, logger)
	if err != nil {
		return nil, err
	}

	if err := checkCollisions(cfg, forest, emitter, logger); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation canceled: %w", err)
	}

	written, err := emitter.Emit(forest)
	if err != nil {
		return nil, fmt.Errorf("emit failed: %w", err)
	}

	logger.Info("generated declarations",
		abstractlogger.Int("declarations", forest.Len()),
		abstractlogger.Int("files", len(written)),
		abstractlogger.String("dir", emitter.Dir()),
	)

	return written, nil
}

func loadQueryDocument(cfg *config.Config) (*ast.QueryDocument, error) {
	queryFilenames, err := cfg.QueryFilenames()
	if err != nil {
		return nil, fmt.Errorf("load query sources failed: %w", err)
	}

	if len(queryFilenames) == 0 {
		return nil, fmt.Errorf("no query files match %v", cfg.Query)
	}

	querySources, err := queryparser.QuerySources(queryFilenames)
	if err != nil {
		return nil, fmt.Errorf("load query sources failed: %w", err)
	}

	queryDocument, err := queryparser.QueryDocument(querySources)
	if err != nil {
		return nil, fmt.Errorf("parse query failed: %w", err)
	}

	return queryDocument, nil
}

func resolve(cfg *config.Config, queryDocument *ast.QueryDocument, logger abstractlogger.Logger) (*shape.Forest, error) {
	for _, name := range shape.NewFragmentIndex(queryDocument).Duplicates() {
		logger.Warn("fragment defined more than once, the first definition is used", abstractlogger.String("fragment", name))
	}

	switch len(queryDocument.Operations) {
	case 0:
		logger.Warn("query document has no operation, nothing to generate")
	case 1:
	default:
		for _, operation := range queryDocument.Operations[1:] {
			logger.Info("only the first operation is generated, skipping", abstractlogger.String("operation", operation.Name))
		}
	}

	scalars, err := cfg.ScalarKinds()
	if err != nil {
		return nil, fmt.Errorf("invalid scalars: %w", err)
	}

	forest, err := shape.ResolveDocument(cfg.Schema, queryDocument, cfg.Namespace, shape.WithScalars(scalars))
	if err != nil {
		return nil, fmt.Errorf("resolve failed: %w", err)
	}

	return forest, nil
}

func checkCollisions(cfg *config.Config, forest *shape.Forest, emitter *gotype.Emitter, logger abstractlogger.Logger) error {
	collisions := forest.Collisions()
	pathCollisions := emitter.PathCollisions(forest)
	if len(collisions)+len(pathCollisions) == 0 {
		return nil
	}

	if cfg.FailOnNameCollision {
		return &NameCollisionError{IDs: slices.Concat(collisions, pathCollisions)}
	}

	for _, id := range collisions {
		logger.Warn("declaration registered more than once, the last one is written", abstractlogger.String("declaration", id.String()))
	}
	for _, id := range pathCollisions {
		logger.Warn("declaration shares its file with another one, the last one is written",
			abstractlogger.String("declaration", id.String()),
			abstractlogger.String("file", emitter.Path(id)),
		)
	}

	return nil
}
