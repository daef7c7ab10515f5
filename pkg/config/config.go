package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/link"
	"github.com/arthur-debert/jungle/pkg/prune"
	"github.com/samber/mo"
)

// Config is the effective jungle configuration
type Config struct {
	Link     LinkConfig     `koanf:"link" toml:"link"`
	Releases ReleasesConfig `koanf:"releases" toml:"releases"`
	Prune    PruneConfig    `koanf:"prune" toml:"prune"`
}

// LinkConfig configures the current link
type LinkConfig struct {
	Name       string `koanf:"name" toml:"name"`
	TempSuffix string `koanf:"temp_suffix" toml:"temp_suffix"`
	Absolute   bool   `koanf:"absolute" toml:"absolute"`
}

// ReleasesConfig configures where version directories live
type ReleasesConfig struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// PruneConfig holds default prune criteria, zero meaning unset
type PruneConfig struct {
	AgeDays    int      `koanf:"age_days" toml:"age_days"`
	Iterations int      `koanf:"iterations" toml:"iterations"`
	Size       ByteSize `koanf:"size" toml:"size"`
}

// ReleasesRoot returns the directory holding the versions of parent
func (c *Config) ReleasesRoot(parent string) string {
	if c.Releases.Dir == "" {
		return parent
	}
	return filepath.Join(parent, c.Releases.Dir)
}

// LinkOptions returns the options for the current link
func (c *Config) LinkOptions() link.Options {
	return link.Options{
		Name:       c.Link.Name,
		TempSuffix: c.Link.TempSuffix,
		Absolute:   c.Link.Absolute,
	}
}

// PrunePolicy returns the configured default prune criteria
func (c *Config) PrunePolicy() prune.Policy {
	var p prune.Policy
	if c.Prune.AgeDays > 0 {
		p.Age = mo.Some(time.Duration(c.Prune.AgeDays) * 24 * time.Hour)
	}
	if c.Prune.Iterations > 0 {
		p.Iterations = mo.Some(c.Prune.Iterations)
	}
	if c.Prune.Size > 0 {
		p.Size = mo.Some(int64(c.Prune.Size))
	}
	return p
}

// Validate checks values that would make jungle write outside the parent
// or produce an unusable link
func (c *Config) Validate() error {
	if err := validateName("link.name", c.Link.Name); err != nil {
		return err
	}
	if c.Link.TempSuffix == "" || strings.ContainsRune(c.Link.TempSuffix, '/') ||
		strings.ContainsRune(c.Link.TempSuffix, filepath.Separator) {
		return invalid("link.temp_suffix", c.Link.TempSuffix, "must be a non-empty suffix without path separators")
	}

	if dir := c.Releases.Dir; dir != "" {
		if filepath.IsAbs(dir) {
			return invalid("releases.dir", dir, "must be relative to the parent")
		}
		clean := filepath.Clean(dir)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return invalid("releases.dir", dir, "must stay inside the parent")
		}
		if clean == c.Link.Name || strings.HasPrefix(clean, c.Link.Name+string(filepath.Separator)) {
			return invalid("releases.dir", dir, "must not go through the current link")
		}
	}

	if c.Prune.AgeDays < 0 {
		return invalid("prune.age_days", c.Prune.AgeDays, "must not be negative")
	}
	if c.Prune.Iterations < 0 {
		return invalid("prune.iterations", c.Prune.Iterations, "must not be negative")
	}
	if c.Prune.Size < 0 {
		return invalid("prune.size", c.Prune.Size, "must not be negative")
	}
	return nil
}

func validateName(key, name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return invalid(key, name, "must be a file name")
	case strings.ContainsRune(name, '/'), strings.ContainsRune(name, filepath.Separator):
		return invalid(key, name, "must not contain path separators")
	}
	return nil
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "invalid %s %v: %s", key, value, reason).
		WithDetail("key", key)
}
