// Package loader reads declarative recipe files and registers the
// resulting definitions.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
	"github.com/hammamikhairi/ottocraft/internal/registry"
)

// Option configures a Loader.
type Option func(*Loader)

// WithDefaults sets the files extracted into a recipe folder that does
// not exist yet. The root of fsys maps to the folder.
func WithDefaults(fsys fs.FS) Option {
	return func(l *Loader) {
		l.defaults = fsys
	}
}

// WithFolders adds recipe folders.
func WithFolders(paths ...string) Option {
	return func(l *Loader) {
		for _, p := range paths {
			l.AddFolder(p)
		}
	}
}

// WithFiles adds individual recipe files.
func WithFiles(paths ...string) Option {
	return func(l *Loader) {
		for _, p := range paths {
			l.AddFile(p)
		}
	}
}

// Loader collects recipe files from folders and single files and keeps
// a registry in sync with them.
type Loader struct {
	registry *registry.Registry
	decoder  *Decoder
	log      *logger.Logger
	folders  []string
	files    []string
	defaults fs.FS
}

// New creates a loader registering into reg.
func New(reg *registry.Registry, decoder *Decoder, log *logger.Logger, opts ...Option) *Loader {
	l := &Loader{
		registry: reg,
		decoder:  decoder,
		log:      log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddFolder adds a folder whose .yml and .yaml files, searched
// recursively, are recipes.
func (l *Loader) AddFolder(path string) {
	if !slices.Contains(l.folders, path) {
		l.folders = append(l.folders, path)
	}
}

// AddFile adds a single recipe file. Problems with the path are reported
// as warnings when loading.
func (l *Loader) AddFile(path string) {
	if !slices.Contains(l.files, path) {
		l.files = append(l.files, path)
	}
}

// Folders returns the configured folders.
func (l *Loader) Folders() []string { return slices.Clone(l.folders) }

// Files resolves every recipe file the loader would read, folders first
// in the order added, each folder's files in lexical order. Missing
// folders are created from the defaults when configured.
func (l *Loader) Files() ([]string, error) {
	var out []string
	var errs []error
	for _, dir := range l.folders {
		if err := l.ensureFolder(dir); err != nil {
			errs = append(errs, err)
			continue
		}
		found, err := walkFolder(dir)
		if err != nil {
			errs = append(errs, err)
		}
		out = append(out, found...)
	}
	for _, f := range l.files {
		info, err := os.Stat(f)
		switch {
		case err != nil:
			l.log.Warn("recipe file %s: %v", f, err)
		case info.IsDir():
			l.log.Warn("recipe file %s is a directory, skipping", f)
		case !isRecipeFile(f):
			l.log.Warn("recipe file %s is not a .yml file, skipping", f)
		case slices.Contains(out, f):
			// already found in a folder
		default:
			out = append(out, f)
		}
	}
	return out, errors.Join(errs...)
}

func isRecipeFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

func walkFolder(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isRecipeFile(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return out, fmt.Errorf("reading recipe folder %s: %w", dir, err)
	}
	return out, nil
}

// ensureFolder extracts the defaults into dir when it does not exist.
func (l *Loader) ensureFolder(dir string) error {
	if _, err := os.Stat(dir); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if l.defaults == nil {
		l.log.Warn("recipe folder %s does not exist", dir)
		return nil
	}
	l.log.Info("extracting default recipes into %s", dir)
	return fs.WalkDir(l.defaults, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(l.defaults, path)
		if err != nil {
			return fmt.Errorf("reading default %s: %w", path, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("extracting default %s: %w", path, err)
		}
		return nil
	})
}

// RecipeName derives a recipe name from its file path.
func RecipeName(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Read decodes every recipe file. Files that fail are reported in the
// joined error and left out; a definition whose id was already read from
// an earlier file is reported as a duplicate.
func (l *Loader) Read() ([]*recipe.Definition, error) {
	files, err := l.Files()
	var errs []error
	if err != nil {
		errs = append(errs, err)
	}

	var defs []*recipe.Definition
	origin := make(map[recipe.ID]string)
	for _, path := range files {
		def, err := l.readFile(path)
		if err != nil {
			l.log.Error("%v", err)
			errs = append(errs, err)
			continue
		}
		if first, ok := origin[def.ID()]; ok {
			err := &ConfigError{Source: path, Recipe: def.ID().String(), Err: &registry.DuplicateKeyError{Key: l.registry.Key(def.ID())}}
			l.log.Error("%v (first defined in %s)", err, first)
			errs = append(errs, err)
			continue
		}
		origin[def.ID()] = path
		defs = append(defs, def)
	}
	registry.SortByPriority(defs)
	return defs, errors.Join(errs...)
}

func (l *Loader) readFile(path string) (*recipe.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}
	return l.decoder.Decode(path, RecipeName(path), data)
}

// Load reads every recipe file and adds the valid definitions to the
// registry, highest priority first. The returned error joins every
// *ConfigError and registry error; valid recipes are registered even
// when others fail.
func (l *Loader) Load() error {
	defs, err := l.Read()
	errs := []error{err}
	added := 0
	for _, def := range defs {
		if err := l.registry.Add(def); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	l.log.Info("loaded %d recipes", added)
	return errors.Join(errs...)
}

// Reload unregisters every recipe and loads the files again. Files are
// read before anything is unregistered, then the registry swaps its
// whole set at once.
func (l *Loader) Reload() error {
	defs, err := l.Read()
	if rerr := l.registry.Replace(defs); rerr != nil {
		err = errors.Join(err, rerr)
	}
	l.log.Info("reloaded %d recipes", l.registry.Len())
	return err
}
