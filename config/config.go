package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/seekscript/seekscript/constant"
	"github.com/seekscript/seekscript/filesystem"
	"github.com/seekscript/seekscript/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer turns a key such as transcript.auto_scroll into the
// environment variable suffix TRANSCRIPT_AUTO_SCROLL.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers the defaults, binds the environment and reads the config
// file if there is one. Values that would be refused later, such as an
// unknown transcript policy, fail here.
func Setup() error {
	viper.SetConfigName(constant.Seekscript)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Seekscript)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return check()
}

// check validates the effective value of every field.
func check() error {
	keys := lo.Keys(Default)
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		field := Default[k]
		if err := field.Check(viper.Get(k)); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
