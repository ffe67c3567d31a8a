package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// FindConfigFile searches path and its parents for one of cfgFilenames,
// looking for the closest match.
func FindConfigFile(path string, cfgFilenames []string) (string, error) {
	var err error

	var dir string
	if path == "." {
		dir, err = os.Getwd()
	} else {
		dir = path
		_, err = os.Stat(dir)
	}

	if err != nil {
		return "", fmt.Errorf("unable to get directory \"%s\" to findCfg: %w", dir, err)
	}

	cfg := findConfigInDir(dir, cfgFilenames)

	for cfg == "" && dir != filepath.Dir(dir) {
		dir = filepath.Dir(dir)
		cfg = findConfigInDir(dir, cfgFilenames)
	}

	if cfg == "" {
		return "", fmt.Errorf("config could not be found, want one of %v: %w", cfgFilenames, os.ErrNotExist)
	}

	return cfg, nil
}

func findConfigInDir(dir string, cfgFilenames []string) string {
	for _, cfgName := range cfgFilenames {
		path := filepath.Join(dir, cfgName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// globFilenames expands globs into a sorted, deduplicated list of files.
// A ** segment walks every subdirectory below the part before it.
func globFilenames(globs []string) ([]string, error) {
	path2regex := strings.NewReplacer(
		`.`, `\.`,
		`*`, `.+`,
		`\`, `[\\/]`,
		`/`, `[\\/]`,
	)

	allFilenames := make(map[string]struct{})

	for _, glob := range globs {
		var filenames []string

		if strings.Contains(glob, "**") {
			pathParts := strings.SplitN(glob, "**", 2)
			rest := strings.TrimPrefix(strings.TrimPrefix(pathParts[1], `\`), `/`)
			// anchored only at the end because ** allows for any number of
			// dirs in between
			globRe := regexp.MustCompile(path2regex.Replace(rest) + `$`)

			if err := filepath.Walk(pathParts[0], func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return fmt.Errorf("%w", err)
				}

				if !info.IsDir() && globRe.MatchString(strings.TrimPrefix(path, pathParts[0])) {
					filenames = append(filenames, path)
				}

				return nil
			}); err != nil {
				return nil, fmt.Errorf("failed to walk schema at root %s: %w", pathParts[0], err)
			}
		} else {
			var err error

			filenames, err = filepath.Glob(glob)
			if err != nil {
				return nil, fmt.Errorf("failed to glob filename %s: %w", glob, err)
			}
		}

		for _, filename := range filenames {
			allFilenames[filename] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(allFilenames)), nil
}

func fileSources(filenames []string) ([]*ast.Source, error) {
	sources := make([]*ast.Source, 0, len(filenames))

	for _, filename := range filenames {
		filename = filepath.ToSlash(filename)

		raw, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		sources = append(sources, &ast.Source{Name: filename, Input: string(raw)})
	}

	return sources, nil
}
