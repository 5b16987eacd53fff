// Copyright (C) 2025 SAGE-X Project
//
// This file is part of inbenta-signature-go.
//
// inbenta-signature-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// inbenta-signature-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with inbenta-signature-go.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"bytes"
	"strings"

	"github.com/fatih/structs"
	"github.com/jeremywohl/flatten"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Option customizes the viper instance before the configuration is read.
type Option func(v *viper.Viper) error

// WithEnvPrefix prefixes every bound environment variable, so the key
// signature.key is read from PREFIX_SIGNATURE_KEY.
func WithEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		return nil
	}
}

// WithDefaults sets default values keyed by dotted config keys.
func WithDefaults(defaults map[string]any) Option {
	return func(v *viper.Viper) error {
		for key, value := range defaults {
			v.SetDefault(key, value)
		}
		return nil
	}
}

// WithFlags binds command line flags to config keys. bindings maps a dotted
// config key to a flag name in fs.
func WithFlags(fs *pflag.FlagSet, bindings map[string]string) Option {
	return func(v *viper.Viper) error {
		for key, name := range bindings {
			flag := fs.Lookup(name)
			if flag == nil {
				return errors.Errorf("unknown flag %q for config key %s", name, key)
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return errors.Wrapf(err, "Unable to bind flag: %s", name)
			}
		}
		return nil
	}
}

// ParseConfig loads config.yaml from the first matching path.
// It just forwards to ParseConfigWithEmbedded with nil.
func ParseConfig[T interface{}](configFilePaths []string, opts ...Option) (*T, error) {
	return ParseConfigWithEmbedded[T](configFilePaths, nil, opts...)
}

// ParseConfigWithEmbedded tries to load config from disk,
// and if the file is NOT found, falls back to embeddedYAML (if provided).
func ParseConfigWithEmbedded[T interface{}](configFilePaths []string, embeddedYAML []byte, opts ...Option) (*T, error) {
	v := viper.New()
	for _, p := range configFilePaths {
		v.AddConfigPath(p)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindAllConfigKeys[T](v); err != nil {
		return nil, err
	}

	err := v.ReadInConfig()
	if err != nil {
		var nfErr viper.ConfigFileNotFoundError
		if errors.As(err, &nfErr) && len(embeddedYAML) > 0 {
			if err2 := v.ReadConfig(bytes.NewReader(embeddedYAML)); err2 != nil {
				return nil, errors.Wrap(err2, "failed to load embedded default config")
			}
		} else {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var c *T
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "Unable to decode into struct")
	}

	return c, nil
}

// Workaround for major viper issue with env variables, documented here
// https://github.com/spf13/viper/issues/761
func bindAllConfigKeys[T interface{}](v *viper.Viper) error {
	var cd T
	// Transform config struct to map
	confMap := structs.Map(cd)

	// Flatten nested conf map
	flat, err := flatten.Flatten(confMap, "", flatten.DotStyle)
	if err != nil {
		return errors.Wrap(err, "Unable to flatten config")
	}

	// Bind each conf field to environment vars
	for key := range flat {
		if err := v.BindEnv(key); err != nil {
			return errors.Wrapf(err, "Unable to bind env var: %s", key)
		}
	}
	return nil
}
