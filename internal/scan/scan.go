// Package scan discovers buildable images laid out as
// <project>/<variant>/<descriptor> under a root filesystem.
package scan

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-git/go-billy/v5"

	"github.com/duyet/i/internal/log"
)

// DefaultDescriptor is the marker file that qualifies a variant.
const DefaultDescriptor = "Dockerfile"

// Options controls a Scan.
type Options struct {
	// Descriptor is the file name that must exist inside a variant directory.
	// Empty means DefaultDescriptor.
	Descriptor string
	// Exclude lists project directory names that are never scanned.
	Exclude []string
	// Strict turns unreadable project directories and descriptor stat
	// failures into errors instead of skipping them with a warning.
	Strict bool
}

// Scan walks fsys two levels deep and returns the projects that have at least
// one variant containing the descriptor file. Projects and variants are sorted
// by name. Failing to list the root is always an error.
func Scan(fsys billy.Filesystem, opts Options) (*ImageMap, error) {
	descriptor := opts.Descriptor
	if descriptor == "" {
		descriptor = DefaultDescriptor
	}

	entries, err := fsys.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}

	m := &ImageMap{}
	for _, name := range dirNames(fsys, ".", entries) {
		if slices.Contains(opts.Exclude, name) {
			continue
		}

		variants, err := scanProject(fsys, name, descriptor)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			log.Warning(fmt.Sprintf("skipping %s: %v", name, err))
			continue
		}
		if len(variants) == 0 {
			continue
		}
		m.projects = append(m.projects, Project{Name: name, Variants: variants})
	}

	return m, nil
}

// scanProject returns the variants of project that contain descriptor.
func scanProject(fsys billy.Filesystem, project, descriptor string) ([]string, error) {
	entries, err := fsys.ReadDir(project)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", project, err)
	}

	var variants []string
	for _, variant := range dirNames(fsys, project, entries) {
		ok, err := isFile(fsys, fsys.Join(project, variant, descriptor))
		if err != nil {
			return nil, err
		}
		if ok {
			variants = append(variants, variant)
		}
	}
	return variants, nil
}

// dirNames returns the sorted names of entries that are directories,
// following symlinks.
func dirNames(fsys billy.Filesystem, parent string, entries []os.FileInfo) []string {
	var names []string
	for _, e := range entries {
		if e.Mode()&os.ModeSymlink != 0 {
			fi, err := fsys.Stat(fsys.Join(parent, e.Name()))
			if err != nil || !fi.IsDir() {
				continue
			}
		} else if !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}

// isFile reports whether path exists and is not a directory. A missing path
// is not an error.
func isFile(fsys billy.Filesystem, path string) (bool, error) {
	fi, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return !fi.IsDir(), nil
}
