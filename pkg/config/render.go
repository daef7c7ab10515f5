package config

import (
	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Render returns cfg as TOML
func Render(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return out, nil
}
