// Package settings persists the user's triage preferences between runs.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/FrenchMajesty/ticket-triage/pkg/adapters"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

const (
	// FileName is the settings file created in the user's home directory
	FileName = ".ticket-triage.yaml"

	// EnvPrefix namespaces environment overrides, e.g. TICKET_TRIAGE_MODEL
	EnvPrefix = "ticket_triage"

	KeyAPIKey = "api_key"
	KeyUseAI  = "use_ai"
	KeyModel  = "model"
)

// Settings are the saved preferences: credential, strategy toggle and model
type Settings struct {
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	UseAI  bool   `yaml:"use_ai" mapstructure:"use_ai"`
	Model  string `yaml:"model,omitempty" mapstructure:"model"`
}

// DefaultPath returns $HOME/.ticket-triage.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Bind registers defaults and environment lookups on v. OPENAI_API_KEY is honoured
// as a fallback for the credential.
func Bind(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyModel, adapters.DefaultModel)
	v.SetDefault(KeyUseAI, false)

	if err := v.BindEnv(KeyAPIKey, "TICKET_TRIAGE_API_KEY", "OPENAI_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind api key env: %w", err)
	}
	return nil
}

// Load reads the current settings from v
func Load(v *viper.Viper) Settings {
	return Settings{
		APIKey: strings.TrimSpace(v.GetString(KeyAPIKey)),
		UseAI:  v.GetBool(KeyUseAI),
		Model:  strings.TrimSpace(v.GetString(KeyModel)),
	}
}

// LoadFile reads settings from a yaml file. A missing file yields zero settings.
func LoadFile(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, readable only by the current user since it may hold a credential
func Save(path string, s Settings) error {
	s.APIKey = strings.TrimSpace(s.APIKey)

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// Clear removes the settings file. Clearing settings that were never saved is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove settings %s: %w", path, err)
	}
	return nil
}

// Strategy maps the AI toggle to a triage strategy
func (s Settings) Strategy() types.Strategy {
	if s.UseAI {
		return types.StrategyRemote
	}
	return types.StrategyHeuristic
}

// Redacted returns a copy safe to print, keeping only the last four characters of the key
func (s Settings) Redacted() Settings {
	if s.APIKey == "" {
		return s
	}
	runes := []rune(s.APIKey)
	if len(runes) <= 4 {
		s.APIKey = "****"
		return s
	}
	s.APIKey = "****" + string(runes[len(runes)-4:])
	return s
}
