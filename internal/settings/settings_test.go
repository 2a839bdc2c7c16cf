package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrenchMajesty/ticket-triage/pkg/adapters"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

func TestSaveThenLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	want := Settings{APIKey: " sk-abc123 ", UseAI: true, Model: "gpt-4o-mini"}

	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{APIKey: "sk-abc123", UseAI: true, Model: "gpt-4o-mini"}, got)
}

func TestLoadFile_Missing(t *testing.T) {
	got, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, got)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("use_ai: [unterminated"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Settings{UseAI: true}))

	require.NoError(t, Clear(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, Clear(path), "clearing twice is fine")
}

func TestBindAndLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("TICKET_TRIAGE_API_KEY", "")

	v := viper.New()
	require.NoError(t, Bind(v))

	got := Load(v)
	assert.Equal(t, adapters.DefaultModel, got.Model)
	assert.False(t, got.UseAI)
	assert.Empty(t, got.APIKey)
}

func TestBindAndLoad_EnvFallbacks(t *testing.T) {
	t.Setenv("TICKET_TRIAGE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-from-openai-env")
	t.Setenv("TICKET_TRIAGE_USE_AI", "true")
	t.Setenv("TICKET_TRIAGE_MODEL", "gpt-env")

	v := viper.New()
	require.NoError(t, Bind(v))

	got := Load(v)
	assert.Equal(t, "sk-from-openai-env", got.APIKey)
	assert.True(t, got.UseAI)
	assert.Equal(t, "gpt-env", got.Model)
}

func TestBindAndLoad_PrefixedKeyWins(t *testing.T) {
	t.Setenv("TICKET_TRIAGE_API_KEY", "sk-prefixed")
	t.Setenv("OPENAI_API_KEY", "sk-generic")

	v := viper.New()
	require.NoError(t, Bind(v))

	assert.Equal(t, "sk-prefixed", Load(v).APIKey)
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, types.StrategyRemote, Settings{UseAI: true}.Strategy())
	assert.Equal(t, types.StrategyHeuristic, Settings{}.Strategy())
}

func TestRedacted(t *testing.T) {
	assert.Equal(t, "****wxyz", Settings{APIKey: "sk-abcdwxyz"}.Redacted().APIKey)
	assert.Equal(t, "****", Settings{APIKey: "abc"}.Redacted().APIKey)
	assert.Equal(t, "", Settings{}.Redacted().APIKey)
}
