package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	jerrors "github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Sections are separated
// by a double underscore: JUNGLE_LINK__NAME sets link.name.
const EnvPrefix = "JUNGLE_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions select the layers applied on top of the defaults
type LoadOptions struct {
	// Parent is the jungle whose .jungle.toml is applied, if any
	Parent string
	// Overrides are dotted keys set from the command line
	Overrides map[string]interface{}
	// SkipUser ignores the user config file and the environment
	SkipUser bool
}

// DefaultsContent returns the embedded defaults file
func DefaultsContent() string {
	return string(defaultConfig)
}

// Defaults returns the embedded defaults only
func Defaults() (*Config, error) {
	return Load(LoadOptions{SkipUser: true})
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config, 3. per-jungle config
	var files []string
	if !opts.SkipUser {
		files = append(files, paths.UserConfigPath())
	}
	if opts.Parent != "" {
		files = append(files, paths.ParentConfigPath(opts.Parent))
	}
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, jerrors.Wrapf(err, jerrors.ErrConfigLoad, "failed to stat config %s", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, jerrors.Wrapf(err, jerrors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 4. Environment
	if !opts.SkipUser {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 5. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				byteSizeHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Trace().Interface("config", cfg).Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps JUNGLE_PRUNE__AGE_DAYS to prune.age_days
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
