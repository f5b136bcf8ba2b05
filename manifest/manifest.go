// Package manifest loads route manifests and generates or matches their paths.
//
// A manifest lists the routes of a site. Each route is described either by a
// pattern string or by pre-parsed segments, the format emitted by static site
// generators: one entry per path segment, each holding static and dynamic parts.
//
//	trailingSlash: never
//	routes:
//	  - name: post
//	    pattern: /blog/:slug
//	  - name: docs
//	    segments:
//	      - [{content: docs}]
//	      - [{content: "...path", dynamic: true, spread: true}]
//
// Manifests are YAML documents; JSON manifests are accepted as well.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dunglas/go-pathtoregexp"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidManifest = errors.New("invalid manifest")
	ErrUnknownRoute    = errors.New("unknown route")
)

// TrailingSlash is the trailing slash policy of generated paths.
type TrailingSlash string

const (
	TrailingSlashIgnore TrailingSlash = "ignore"
	TrailingSlashNever  TrailingSlash = "never"
	TrailingSlashAlways TrailingSlash = "always"
)

// Part is a piece of a path segment.
type Part struct {
	Content string `yaml:"content" json:"content"`
	Dynamic bool   `yaml:"dynamic,omitempty" json:"dynamic,omitempty"`
	Spread  bool   `yaml:"spread,omitempty" json:"spread,omitempty"`
}

// Route is an entry of a manifest.
type Route struct {
	Name        string         `yaml:"name"`
	Pattern     string         `yaml:"pattern,omitempty"`
	Segments    [][]Part       `yaml:"segments,omitempty"`
	Component   string         `yaml:"component,omitempty"`
	Frontmatter map[string]any `yaml:"frontmatter,omitempty"`

	tokens   []pathtoregexp.Token
	generate pathtoregexp.PathFunc
	match    pathtoregexp.MatchFunc
}

// Tokens returns the parsed form of the route.
func (r *Route) Tokens() []pathtoregexp.Token {
	return r.tokens
}

// String returns the route's pattern string.
func (r *Route) String() string {
	return pathtoregexp.Format(r.tokens, nil)
}

// FrontmatterString returns a frontmatter value converted to a string, or "" when absent.
func (r *Route) FrontmatterString(key string) string {
	return cast.ToString(r.Frontmatter[key])
}

// Manifest is a compiled list of routes.
// Once loaded, it is immutable and safe for concurrent use.
type Manifest struct {
	TrailingSlash TrailingSlash `yaml:"trailingSlash,omitempty"`
	Sensitive     bool          `yaml:"sensitive,omitempty"`
	Strict        bool          `yaml:"strict,omitempty"`
	Routes        []*Route      `yaml:"routes"`

	byName map[string]*Route
}

// Load reads and compiles the manifest stored at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return Parse(data)
}

// Parse decodes and compiles a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if err := m.compile(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Manifest) options() *pathtoregexp.Options {
	return &pathtoregexp.Options{
		Sensitive: m.Sensitive,
		Strict:    m.Strict,
	}
}

func (m *Manifest) compile() error {
	switch m.TrailingSlash {
	case "":
		m.TrailingSlash = TrailingSlashIgnore
	case TrailingSlashIgnore, TrailingSlashNever, TrailingSlashAlways:
	default:
		return fmt.Errorf("%w: unknown trailing slash policy %q", ErrInvalidManifest, m.TrailingSlash)
	}

	options := m.options()
	m.byName = make(map[string]*Route, len(m.Routes))

	for i, r := range m.Routes {
		if r == nil {
			return fmt.Errorf("%w: route %d is empty", ErrInvalidManifest, i)
		}

		if r.Name == "" {
			return fmt.Errorf("%w: route %d has no name", ErrInvalidManifest, i)
		}

		if _, ok := m.byName[r.Name]; ok {
			return fmt.Errorf("%w: duplicate route name %q", ErrInvalidManifest, r.Name)
		}

		if err := m.compileRoute(r, options); err != nil {
			return fmt.Errorf("%w: route %q: %w", ErrInvalidManifest, r.Name, err)
		}

		m.byName[r.Name] = r
	}

	return nil
}

func (m *Manifest) compileRoute(r *Route, options *pathtoregexp.Options) error {
	var err error

	switch {
	case r.Pattern != "" && r.Segments != nil:
		return errors.New("pattern and segments are mutually exclusive")
	case r.Pattern != "":
		r.tokens, err = pathtoregexp.Parse(r.Pattern, options)
	default:
		r.tokens, err = SegmentsToTokens(r.Segments, options)
	}
	if err != nil {
		return err
	}

	generated := r.tokens
	if m.TrailingSlash == TrailingSlashAlways && len(r.Segments) > 0 {
		generated = appendLiteral(generated, "/")
	}

	if r.generate, err = pathtoregexp.TokensToFunction(generated, options); err != nil {
		return err
	}

	re, keys, err := pathtoregexp.TokensToRegexp(r.tokens, options)
	if err != nil {
		return err
	}

	r.match = pathtoregexp.RegexpToFunction(re, keys, options)

	return nil
}

// Route returns the route registered under name.
func (m *Manifest) Route(name string) (*Route, bool) {
	r, ok := m.byName[name]

	return r, ok
}

// Generate builds the path of the named route from data.
func (m *Manifest) Generate(name string, data map[string]any) (string, error) {
	r, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	path, err := r.generate(data)
	if err != nil {
		return "", fmt.Errorf("route %q: %w", name, err)
	}

	switch {
	case path == "":
		return "/", nil
	case m.TrailingSlash == TrailingSlashNever && len(path) > 1:
		return strings.TrimSuffix(path, "/"), nil
	}

	return path, nil
}

// Match returns the first route, in manifest order, matching path.
// It returns a nil route when none matches.
func (m *Manifest) Match(path string) (*Route, *pathtoregexp.MatchResult, error) {
	for _, r := range m.Routes {
		result, err := r.match(path)
		if err != nil {
			return nil, nil, fmt.Errorf("route %q: %w", r.Name, err)
		}

		if result != nil {
			return r, result, nil
		}
	}

	return nil, nil, nil
}
