// Package config handles loading and persisting the generation settings
// for copygen. Settings are stored in ~/.copygen/config.json.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	dirName  = ".copygen"
	fileName = "config.json"

	DefaultEndpoint = "https://api.siliconflow.cn/v1/chat/completions"
	DefaultModel    = "Qwen/Qwen3-8B"

	envPrefix = "COPYGEN"

	keyEndpoint = "endpoint"
	keyAPIKey   = "api_key"
	keyModel    = "model"
)

// Settings is the connection info for the completion endpoint.
type Settings struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
}

// MaskedKey returns the credential with everything but the edges hidden.
func (s Settings) MaskedKey() string {
	switch n := len(s.APIKey); {
	case n == 0:
		return "(not set)"
	case n <= 8:
		return strings.Repeat("*", n)
	default:
		return s.APIKey[:4] + "..." + s.APIKey[n-4:]
	}
}

// Dir returns the configuration directory path.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

func configPath() string {
	return filepath.Join(Dir(), fileName)
}

// fileViper reads only what is on disk, without environment overrides,
// so that Save never persists a value that came from the environment.
func fileViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(configPath())
	v.SetConfigType("json")
	v.SetConfigPermissions(0o600)
	v.SetDefault(keyEndpoint, DefaultEndpoint)
	v.SetDefault(keyModel, DefaultModel)
	v.SetDefault(keyAPIKey, "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

// Load reads the settings from disk and applies COPYGEN_* environment
// overrides on top.
func Load() (*Settings, error) {
	v, err := fileViper()
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{keyEndpoint, keyAPIKey, keyModel} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	return fromViper(v), nil
}

// LoadFile reads the settings as stored on disk, ignoring environment
// overrides.
func LoadFile() (*Settings, error) {
	v, err := fileViper()
	if err != nil {
		return nil, err
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Settings {
	s := &Settings{
		Endpoint: strings.TrimSpace(v.GetString(keyEndpoint)),
		APIKey:   strings.TrimSpace(v.GetString(keyAPIKey)),
		Model:    strings.TrimSpace(v.GetString(keyModel)),
	}
	if s.Endpoint == "" {
		s.Endpoint = DefaultEndpoint
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	return s
}

// Save persists all three settings fields to disk.
func Save(s Settings) error {
	return update(func(v *viper.Viper) {
		v.Set(keyEndpoint, s.Endpoint)
		v.Set(keyAPIKey, s.APIKey)
		v.Set(keyModel, s.Model)
	})
}

// SetEndpoint saves the completion endpoint URL.
func SetEndpoint(endpoint string) error {
	return update(func(v *viper.Viper) { v.Set(keyEndpoint, endpoint) })
}

// SetAPIKey saves the bearer credential.
func SetAPIKey(key string) error {
	return update(func(v *viper.Viper) { v.Set(keyAPIKey, key) })
}

// SetModel saves the model identifier.
func SetModel(model string) error {
	return update(func(v *viper.Viper) { v.Set(keyModel, model) })
}

func update(apply func(v *viper.Viper)) error {
	v, err := fileViper()
	if err != nil {
		return err
	}
	apply(v)

	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return err
	}
	return v.WriteConfigAs(configPath())
}
