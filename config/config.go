package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gqlgenconfig "github.com/99designs/gqlgen/codegen/config"
	"github.com/Yamashou/gqldto/introspection"
	"github.com/Yamashou/gqldto/shape"
	"github.com/goccy/go-yaml"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

const (
	DefaultNamespace     = "generated"
	DefaultOutput        = "."
	DefaultTargetVersion = "1.18"
	DefaultLogLevel      = "info"
)

var cfgFilenames = []string{".gqldto.yml", "gqldto.yml", ".gqldto.yaml", "gqldto.yaml"}

// Config represents the config file
type Config struct {
	SchemaFilename      gqlgenconfig.StringList `yaml:"schema"`
	Query               gqlgenconfig.StringList `yaml:"query"`
	Namespace           string                  `yaml:"namespace,omitempty"`
	Output              string                  `yaml:"output,omitempty"`
	TargetVersion       string                  `yaml:"target_version,omitempty"`
	Scalars             map[string]string       `yaml:"scalars,omitempty"`
	FailOnNameCollision bool                    `yaml:"fail_on_name_collision,omitempty"`
	LogLevel            string                  `yaml:"log_level,omitempty"`

	Schema *ast.Schema `yaml:"-"`
}

// LoadConfigFromDefaultLocations looks for a config file in the specified directory, and all parent directories
// walking up the tree. The closest config file will be returned.
func LoadConfigFromDefaultLocations(dir string) (*Config, error) {
	cfgFile, err := FindConfigFile(dir, cfgFilenames)
	if err != nil {
		return nil, err
	}

	return LoadConfig(cfgFile)
}

// LoadConfig loads and parses the config file. Relative paths in the file
// are resolved against the directory the file lives in.
func LoadConfig(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var cfg Config
	confContent := []byte(os.ExpandEnv(string(b)))
	if err := yaml.UnmarshalWithOptions(confContent, &cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	dir := filepath.Dir(filename)
	cfg.SchemaFilename = relativeTo(dir, cfg.SchemaFilename)
	cfg.Query = relativeTo(dir, cfg.Query)
	if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(dir, cfg.Output)
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Init fills defaults and validates the config.
func (c *Config) Init() error {
	if len(c.SchemaFilename) == 0 {
		return fmt.Errorf("'schema' is not specified")
	}

	if len(c.Query) == 0 {
		return fmt.Errorf("'query' is not specified")
	}

	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}

	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.TargetVersion == "" {
		c.TargetVersion = DefaultTargetVersion
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if _, err := c.ScalarKinds(); err != nil {
		return err
	}

	return nil
}

// ScalarKinds returns the custom scalar bindings as shape kinds.
func (c *Config) ScalarKinds() (map[string]shape.Kind, error) {
	kinds := make(map[string]shape.Kind, len(c.Scalars))
	for scalar, name := range c.Scalars {
		kind, err := shape.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("scalars.%s: %w", scalar, err)
		}
		kinds[scalar] = kind
	}

	return kinds, nil
}

// LoadSchema loads and parses the schema files. Files ending in .json are
// read as introspection results, everything else as SDL. A type defined in
// SDL wins over an introspected one of the same name.
func (c *Config) LoadSchema() error {
	filenames, err := globFilenames(c.SchemaFilename)
	if err != nil {
		return err
	}

	if len(filenames) == 0 {
		return fmt.Errorf("no schema files match %v", c.SchemaFilename)
	}

	var sdlFilenames, introspectionFilenames []string
	for _, filename := range filenames {
		if strings.EqualFold(filepath.Ext(filename), ".json") {
			introspectionFilenames = append(introspectionFilenames, filename)
		} else {
			sdlFilenames = append(sdlFilenames, filename)
		}
	}

	sources, err := fileSources(sdlFilenames)
	if err != nil {
		return fmt.Errorf("unable to open schema: %w", err)
	}

	doc, err := parser.ParseSchemas(append([]*ast.Source{validator.Prelude}, sources...)...)
	if err != nil {
		return fmt.Errorf("load local schema failed: %w", err)
	}

	for _, filename := range introspectionFilenames {
		remote, err := loadIntrospectionSchema(filename)
		if err != nil {
			return fmt.Errorf("load introspection schema failed: %w", err)
		}
		mergeUndefined(doc, remote)
	}

	schema, err := validator.ValidateSchemaDocument(doc)
	if err != nil {
		return fmt.Errorf("load local schema failed: %w", err)
	}

	c.Schema = schema

	return nil
}

func loadIntrospectionSchema(filename string) (*ast.SchemaDocument, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	query, err := introspection.DecodeQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return introspection.ParseIntrospectionQuery(filepath.ToSlash(filename), query), nil
}

// mergeUndefined adds the definitions of remote that doc does not define
// yet. The schema definition is only taken when doc has none.
func mergeUndefined(doc, remote *ast.SchemaDocument) {
	if len(doc.Schema) == 0 {
		doc.Schema = append(doc.Schema, remote.Schema...)
	}

	for _, def := range remote.Definitions {
		if doc.Definitions.ForName(def.Name) == nil {
			doc.Definitions = append(doc.Definitions, def)
		}
	}

	for _, directive := range remote.Directives {
		if doc.Directives.ForName(directive.Name) == nil {
			doc.Directives = append(doc.Directives, directive)
		}
	}
}

// QueryFilenames expands the query globs.
func (c *Config) QueryFilenames() ([]string, error) {
	return globFilenames(c.Query)
}

func relativeTo(dir string, paths gqlgenconfig.StringList) gqlgenconfig.StringList {
	if len(paths) == 0 {
		return paths
	}

	ret := make(gqlgenconfig.StringList, 0, len(paths))
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		ret = append(ret, path)
	}

	return ret
}
