// Package editor configures the authoring surface: compiler options, import
// aliases and the virtual declaration library that stands in for the widget
// toolkit, plus the language service built on top of them.
package editor

import (
	"sort"
	"strings"
)

const (
	DefaultPackage   = "preview"
	DefaultEntry     = "Default"
	DefaultGoVersion = "go1.22"
	DefaultAlias     = "@/"
	VirtualModule    = "vitrine.dev/"
)

var defaultAllowedImports = []string{
	"bytes",
	"encoding/base64",
	"encoding/json",
	"errors",
	"fmt",
	"math",
	"path",
	"regexp",
	"sort",
	"strconv",
	"strings",
	"time",
	"unicode",
	"unicode/utf8",
}

type CompilerOptions struct {
	Package        string
	Entry          string
	GoVersion      string
	Paths          map[string]string
	AllowedImports []string
}

// Config is built once per authoring surface and shared by pointer. It is
// never mutated after NewConfig returns.
type Config struct {
	options CompilerOptions
	library Library
	allowed map[string]bool
	aliases []alias
}

type alias struct {
	prefix string
	root   string
}

type Option func(*Config)

func WithPackage(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.options.Package = name
		}
	}
}

func WithEntry(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.options.Entry = name
		}
	}
}

func WithGoVersion(v string) Option {
	return func(c *Config) {
		if v != "" {
			c.options.GoVersion = v
		}
	}
}

func WithAlias(prefix, root string) Option {
	return func(c *Config) {
		c.options.Paths[prefix] = root
	}
}

// WithAllowedImports replaces the default stdlib allow-list. Virtual
// packages are always allowed.
func WithAllowedImports(paths ...string) Option {
	return func(c *Config) {
		c.options.AllowedImports = append([]string(nil), paths...)
	}
}

func WithLibraryFile(virtualPath, declarations string) Option {
	return func(c *Config) {
		c.library[virtualPath] = declarations
	}
}

func NewConfig(opts ...Option) *Config {
	c := &Config{
		options: CompilerOptions{
			Package:        DefaultPackage,
			Entry:          DefaultEntry,
			GoVersion:      DefaultGoVersion,
			Paths:          map[string]string{DefaultAlias: VirtualModule},
			AllowedImports: append([]string(nil), defaultAllowedImports...),
		},
		library: DefaultLibrary(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.allowed = make(map[string]bool, len(c.options.AllowedImports))
	for _, p := range c.options.AllowedImports {
		c.allowed[p] = true
	}

	for prefix, root := range c.options.Paths {
		c.aliases = append(c.aliases, alias{prefix: prefix, root: root})
	}
	// Longest prefix wins.
	sort.Slice(c.aliases, func(i, j int) bool {
		return len(c.aliases[i].prefix) > len(c.aliases[j].prefix)
	})

	return c
}

func (c *Config) Options() CompilerOptions {
	opts := c.options
	opts.Paths = make(map[string]string, len(c.options.Paths))
	for k, v := range c.options.Paths {
		opts.Paths[k] = v
	}
	opts.AllowedImports = append([]string(nil), c.options.AllowedImports...)
	return opts
}

func (c *Config) Library() Library {
	return c.library.clone()
}

// ResolveImport maps an aliased import path to its virtual import path.
func (c *Config) ResolveImport(path string) string {
	for _, a := range c.aliases {
		if rest, ok := strings.CutPrefix(path, a.prefix); ok {
			return a.root + rest
		}
	}
	return path
}

func (c *Config) IsVirtual(importPath string) bool {
	_, ok := c.library.Packages()[c.ResolveImport(importPath)]
	return ok
}

func (c *Config) ImportAllowed(importPath string) bool {
	resolved := c.ResolveImport(importPath)
	return c.allowed[resolved] || c.IsVirtual(resolved)
}
