// Package config loads route tables and router options from TOML, YAML or
// JSON files. Components are named in the file and resolved through a
// Registry supplied by the application.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
)

var (
	ErrUnknownFormat    = errors.New("unknown config format")
	ErrUnknownComponent = errors.New("unknown component")
	ErrInvalidRoute     = errors.New("invalid route")
)

// Format names a file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// File is the decoded configuration.
type File struct {
	Mode string `toml:"mode" yaml:"mode" json:"mode"`
	Base string `toml:"base" yaml:"base" json:"base"`
	// Fallback defaults to true.
	Fallback *bool   `toml:"fallback" yaml:"fallback" json:"fallback"`
	Routes   []Route `toml:"routes" yaml:"routes" json:"routes"`
}

// Route is one entry of the route table.
type Route struct {
	Path          string            `toml:"path" yaml:"path" json:"path"`
	Name          string            `toml:"name" yaml:"name" json:"name"`
	Component     string            `toml:"component" yaml:"component" json:"component"`
	Components    map[string]string `toml:"components" yaml:"components" json:"components"`
	Redirect      string            `toml:"redirect" yaml:"redirect" json:"redirect"`
	RedirectName  string            `toml:"redirect_name" yaml:"redirect_name" json:"redirect_name"`
	Alias         []string          `toml:"alias" yaml:"alias" json:"alias"`
	Meta          map[string]any    `toml:"meta" yaml:"meta" json:"meta"`
	CaseSensitive bool              `toml:"case_sensitive" yaml:"case_sensitive" json:"case_sensitive"`
	Children      []Route           `toml:"children" yaml:"children" json:"children"`
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		for _, key := range meta.Undecoded() {
			console.Warn("[config.Parse] unknown key:", key.String())
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &f, nil
}

// Registry resolves component names used in files.
type Registry interface {
	Lookup(name string) (any, bool)
}

// MapRegistry is a Registry backed by a map.
type MapRegistry map[string]any

func (m MapRegistry) Lookup(name string) (any, bool) {
	c, ok := m[name]
	return c, ok
}

// Names is a Registry resolving every name to itself. Tools that never
// render use it.
type Names struct{}

func (Names) Lookup(name string) (any, bool) { return name, true }

// Options builds router options from f. The Window and ScrollBehavior are
// left for the caller.
func (f *File) Options(reg Registry) (router.Options, error) {
	mode := history.Mode(f.Mode)
	if mode != "" && !mode.Valid() {
		return router.Options{}, fmt.Errorf("%w: %q", history.ErrInvalidMode, f.Mode)
	}
	routes, err := RouteConfigs(f.Routes, reg)
	if err != nil {
		return router.Options{}, err
	}
	return router.Options{
		Routes:          routes,
		Mode:            mode,
		Base:            f.Base,
		DisableFallback: f.Fallback != nil && !*f.Fallback,
	}, nil
}

// RouteConfigs converts decoded top-level routes into route configs.
// Children may leave their path empty to declare the default child.
func RouteConfigs(routes []Route, reg Registry) ([]route.Config, error) {
	return routeConfigs(routes, reg, false)
}

func routeConfigs(routes []Route, reg Registry, nested bool) ([]route.Config, error) {
	configs := make([]route.Config, 0, len(routes))
	for _, r := range routes {
		cfg, err := r.config(reg, nested)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (r Route) config(reg Registry, nested bool) (route.Config, error) {
	if r.Path == "" && !nested {
		return route.Config{}, fmt.Errorf("%w: route %q has no path", ErrInvalidRoute, r.Name)
	}
	if r.Redirect != "" && r.RedirectName != "" {
		return route.Config{}, fmt.Errorf("%w: %q sets both redirect and redirect_name", ErrInvalidRoute, r.Path)
	}

	cfg := route.Config{
		Path:          r.Path,
		Name:          r.Name,
		Alias:         r.Alias,
		Meta:          r.Meta,
		CaseSensitive: r.CaseSensitive,
	}
	switch {
	case r.Redirect != "":
		cfg.Redirect = route.Path(r.Redirect)
	case r.RedirectName != "":
		cfg.Redirect = route.Named(r.RedirectName, nil)
	}

	if r.Component != "" {
		c, err := lookup(reg, r.Component, r.Path)
		if err != nil {
			return route.Config{}, err
		}
		cfg.Component = c
	}
	if len(r.Components) > 0 {
		cfg.Components = make(map[string]any, len(r.Components))
		for view, name := range r.Components {
			c, err := lookup(reg, name, r.Path)
			if err != nil {
				return route.Config{}, err
			}
			cfg.Components[view] = c
		}
	}

	children, err := routeConfigs(r.Children, reg, true)
	if err != nil {
		return route.Config{}, err
	}
	if len(children) > 0 {
		cfg.Children = children
	}
	return cfg, nil
}

func lookup(reg Registry, name, path string) (any, error) {
	if reg == nil {
		reg = Names{}
	}
	c, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q in route %q", ErrUnknownComponent, name, path)
	}
	return c, nil
}
