package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment overrides: DOCSEARCH_PAGE_SIZE -> page_size.
const EnvPrefix = "DOCSEARCH_"

// Load overlays the yaml file at path and the environment onto cfg.
// A missing file is not an error unless required is set.
func Load(cfg *Config, path string, required bool) error {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) || required {
		return fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("unmarshalling config: %w", err)
	}
	return nil
}

// ConfigPath finds the -config/--config value in args ahead of flag parsing
// so that flags can override what the file sets.
func ConfigPath(args []string) (string, bool) {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
	}
	return DefaultConfigFile, false
}
