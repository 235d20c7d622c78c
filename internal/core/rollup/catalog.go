package rollup

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListLimit = 50
	DefaultMaxLimit  = 1000
)

// CatalogEntry is the operator-facing configuration of one rollup.
// Entries are loaded once at startup from YAML files; no hot reload.
type CatalogEntry struct {
	Name           string
	Enabled        bool
	DefaultLimit   int
	MaxLimit       int
	RefreshTimeout time.Duration
	Digest         string // SHA-256 of the raw YAML file
}

// rawEntry is the on-disk YAML shape. Pointers distinguish "absent" from zero.
type rawEntry struct {
	Name           string `yaml:"name"`
	Enabled        *bool  `yaml:"enabled"`
	DefaultLimit   *int   `yaml:"default_limit"`
	MaxLimit       *int   `yaml:"max_limit"`
	RefreshTimeout string `yaml:"refresh_timeout"`
}

// Catalog holds rollup settings keyed by rollup name.
type Catalog struct {
	dir     string
	entries map[string]CatalogEntry
}

// LoadCatalog reads every *.yaml / *.yml file in dir, one rollup per file.
// A missing directory is valid and yields an empty catalog, which enables every
// built-in rollup with default settings.
func LoadCatalog(dir string) (*Catalog, error) {
	c := &Catalog{
		dir:     dir,
		entries: make(map[string]CatalogEntry),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) load() error {
	if c.dir == "" {
		return nil
	}
	info, err := os.Stat(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("rollup catalog dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("rollup catalog path %q is not a directory", c.dir)
	}

	files, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading rollup catalog dir: %w", err)
	}

	for _, f := range files {
		if f.IsDir() || (!strings.HasSuffix(f.Name(), ".yaml") && !strings.HasSuffix(f.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(c.dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading rollup file %s: %w", path, err)
		}

		var raw rawEntry
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing rollup file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // comment-only file
		}

		entry, err := raw.resolve()
		if err != nil {
			return err
		}
		entry.Digest = fmt.Sprintf("%x", sha256.Sum256(data))

		if _, exists := c.entries[entry.Name]; exists {
			return fmt.Errorf("rollup %q: configured more than once (check multiple YAML files)", entry.Name)
		}
		c.entries[entry.Name] = entry
	}
	return nil
}

func (r rawEntry) resolve() (CatalogEntry, error) {
	entry := CatalogEntry{
		Name:         r.Name,
		Enabled:      true,
		DefaultLimit: DefaultListLimit,
		MaxLimit:     DefaultMaxLimit,
	}
	if r.Enabled != nil {
		entry.Enabled = *r.Enabled
	}
	if r.MaxLimit != nil {
		entry.MaxLimit = *r.MaxLimit
	}
	if r.DefaultLimit != nil {
		entry.DefaultLimit = *r.DefaultLimit
	}

	if entry.MaxLimit <= 0 {
		return entry, fmt.Errorf("rollup %q: max_limit must be > 0", r.Name)
	}
	if entry.DefaultLimit <= 0 {
		return entry, fmt.Errorf("rollup %q: default_limit must be > 0", r.Name)
	}
	if entry.DefaultLimit > entry.MaxLimit {
		return entry, fmt.Errorf("rollup %q: default_limit %d exceeds max_limit %d", r.Name, entry.DefaultLimit, entry.MaxLimit)
	}

	if r.RefreshTimeout != "" {
		timeout, err := time.ParseDuration(r.RefreshTimeout)
		if err != nil {
			return entry, fmt.Errorf("rollup %q: invalid refresh_timeout %q: %w", r.Name, r.RefreshTimeout, err)
		}
		if timeout <= 0 {
			return entry, fmt.Errorf("rollup %q: refresh_timeout must be > 0", r.Name)
		}
		entry.RefreshTimeout = timeout
	}
	return entry, nil
}

// Entries returns the configured entries sorted by name.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve applies the catalog to defs and returns only the enabled definitions,
// in their original order, with Settings populated. Entries naming an unknown
// rollup are rejected. loc is the calendar time zone the rows will be computed
// in and is part of each definition's fingerprint.
func (c *Catalog) Resolve(defs []Definition, loc *time.Location) ([]Definition, error) {
	known := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		known[def.Name] = struct{}{}
	}
	for name := range c.entries {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("rollup %q in %s is not a known rollup", name, c.dir)
		}
	}

	out := make([]Definition, 0, len(defs))
	for _, def := range defs {
		entry, ok := c.entries[def.Name]
		if !ok {
			entry = CatalogEntry{
				Name:         def.Name,
				Enabled:      true,
				DefaultLimit: DefaultListLimit,
				MaxLimit:     DefaultMaxLimit,
			}
		}
		if !entry.Enabled {
			continue
		}
		def.Settings = Settings{
			Enabled:        true,
			DefaultLimit:   entry.DefaultLimit,
			MaxLimit:       entry.MaxLimit,
			RefreshTimeout: entry.RefreshTimeout,
			Fingerprint:    Fingerprint(def, loc),
		}
		out = append(out, def)
	}
	return out, nil
}

// Fingerprint identifies everything that shapes a definition's row content.
// Archived snapshots with a different fingerprint are not restored.
func Fingerprint(def Definition, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	sum := sha256.Sum256([]byte(def.Name + "\x00" + def.Version + "\x00" + loc.String()))
	return fmt.Sprintf("%x", sum)
}
