// Package contract reads surface contracts from YAML documents.
package contract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/almartin82/sdschooldata/internal/surface"
	"github.com/almartin82/sdschooldata/internal/workspace"
)

const (
	LoaderPackages = "packages"
	LoaderAST      = "ast"
)

// Contract names a module, how to load it, and the symbols it must expose.
type Contract struct {
	Module  string   `yaml:"module" json:"module"`
	Loader  string   `yaml:"loader,omitempty" json:"loader,omitempty"`
	Dir     string   `yaml:"dir,omitempty" json:"dir,omitempty"`
	Symbols []Symbol `yaml:"symbols" json:"symbols"`

	// Source is the file the contract was read from, if any.
	Source string `yaml:"-" json:"source,omitempty"`
}

// Symbol is one expected symbol as written in a contract file.
type Symbol struct {
	Name      string `yaml:"name" json:"name"`
	Kind      string `yaml:"kind" json:"kind"`
	Predicate string `yaml:"predicate,omitempty" json:"predicate,omitempty"`
}

// Load reads a contract from a YAML file. A relative dir in the document
// is resolved against the file's directory.
func Load(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract file %s: %w", path, err)
	}
	c.Source = path
	c.Dir = resolveDir(filepath.Dir(path), c.Dir)
	return c, nil
}

// LoadFrom reads a contract through r, so the file must live under r's root.
// root is the directory r is rooted at and anchors the contract's dir.
func LoadFrom(r workspace.FileReader, root, relPath string) (*Contract, error) {
	data, err := r.ReadFile(relPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract file %s: %w", relPath, err)
	}
	c, err := Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract file %s: %w", relPath, err)
	}
	c.Source = relPath
	c.Dir = resolveDir(filepath.Join(root, filepath.Dir(relPath)), c.Dir)
	return c, nil
}

// Parse decodes and validates a YAML contract document.
func Parse(data []byte) (*Contract, error) {
	var c Contract
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the document without loading the module.
func (c *Contract) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Module) == "" {
		errs = append(errs, errors.New("module is required"))
	}
	switch c.Loader {
	case "", LoaderPackages, LoaderAST:
	default:
		errs = append(errs, fmt.Errorf("unknown loader %q (want %s or %s)", c.Loader, LoaderPackages, LoaderAST))
	}
	if len(c.Symbols) == 0 {
		errs = append(errs, errors.New("at least one symbol is required"))
	}

	seen := make(map[string]bool, len(c.Symbols))
	for i, s := range c.Symbols {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("symbols[%d]: name is required", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("symbols[%d]: duplicate symbol %q", i, name))
		}
		seen[name] = true
		if _, err := surface.ParseKind(s.Kind); err != nil {
			errs = append(errs, fmt.Errorf("symbols[%d] %s: %w", i, name, err))
		}
		if s.Predicate != "" {
			if _, ok := surface.LookupPredicate(s.Predicate); !ok {
				errs = append(errs, fmt.Errorf("symbols[%d] %s: unknown predicate %q (known: %s)",
					i, name, s.Predicate, strings.Join(surface.PredicateNames(), ", ")))
			}
		}
	}
	return errors.Join(errs...)
}

// Descriptors converts the contract's symbols into verifier descriptors.
func (c *Contract) Descriptors() ([]surface.Descriptor, error) {
	descs := make([]surface.Descriptor, 0, len(c.Symbols))
	for _, s := range c.Symbols {
		kind, err := surface.ParseKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", s.Name, err)
		}
		d := surface.Descriptor{Name: strings.TrimSpace(s.Name), Kind: kind}
		if s.Predicate != "" {
			p, ok := surface.LookupPredicate(s.Predicate)
			if !ok {
				return nil, fmt.Errorf("symbol %s: unknown predicate %q", s.Name, s.Predicate)
			}
			d.Predicate = p
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// LoaderName returns the configured loader, falling back to def when the
// contract does not name one.
func (c *Contract) LoaderName(def string) string {
	if c.Loader != "" {
		return c.Loader
	}
	return def
}

// NewLoader builds the named loader rooted at dir.
func NewLoader(name, dir string) (surface.Loader, error) {
	switch name {
	case LoaderPackages, "":
		return &surface.PackagesLoader{Dir: dir}, nil
	case LoaderAST:
		return &surface.ASTLoader{Root: dir}, nil
	}
	return nil, fmt.Errorf("unknown loader %q", name)
}

func resolveDir(base, dir string) string {
	if dir == "" {
		return base
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// Job turns the contract into a verification job. defaultLoader applies
// when the contract does not name a loader.
func (c *Contract) Job(defaultLoader string) (surface.Job, error) {
	descs, err := c.Descriptors()
	if err != nil {
		return surface.Job{}, err
	}
	loader, err := NewLoader(c.LoaderName(defaultLoader), c.Dir)
	if err != nil {
		return surface.Job{}, err
	}
	return surface.Job{Ref: c.Module, Loader: loader, Descriptors: descs}, nil
}
