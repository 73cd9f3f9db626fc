package agent

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// TypedConfig implements functionality for typing a Config.
// In this way, a Config can explicitly have its type stored so
// that when deserializing the Config, we can deserialize it into
// its concrete type without knowing beforehand or declaring beforehand
// a variable of its concrete type.
//
// In YAML, a TypedConfig is written as
//
//	type: QLearning
//	config:
//	  alpha: 0.5
//	  episodes: 2000
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig types the argument Config and returns it as a
// TypedConfig which explicitly holds its Type.
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

type rawTypedConfig struct {
	Type   Type        `yaml:"type"`
	Config interface{} `yaml:"config"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (t *TypedConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawTypedConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}

	config, err := unmarshalConfig(raw.Type, raw.Config)
	if err != nil {
		return err
	}

	t.Type = raw.Type
	t.Config = config
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface
func (t TypedConfig) MarshalYAML() (interface{}, error) {
	return rawTypedConfig{Type: t.Type, Config: t.Config}, nil
}

// unmarshalConfig uses reflection to unmarshal a Config into its
// concrete type, starting from the registered defaults of the type
func unmarshalConfig(solverType Type, value interface{}) (Config, error) {
	ptr, err := newConfig(solverType)
	if err != nil {
		return nil, fmt.Errorf("unmarshalConfig: %w", err)
	}

	if value != nil {
		data, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("unmarshalConfig: %v", err)
		}
		if err := yaml.UnmarshalStrict(data, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("unmarshalConfig: %v: %v", solverType, err)
		}
	}

	return ptr.Elem().Interface().(Config), nil
}
