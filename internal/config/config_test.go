package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, "White", s.Defaults.BallColor)
	assert.Equal(t, "Upcoming Match", s.Defaults.Header)
	assert.NotEmpty(t, s.Models.Search)
	assert.NotEmpty(t, s.Models.Fast)
	assert.NotEmpty(t, s.Models.Image)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := `
server:
  addr: ":9090"
team:
  name: Smashers
  location: Mumbai
  captain: Rohit
defaults:
  fees: "200"
  ball_color: Red
models:
  fast: custom-fast
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", s.Server.Addr)
	assert.Equal(t, "Smashers", s.Team.Name)
	assert.Equal(t, "Mumbai", s.Team.Location)
	assert.Equal(t, "200", s.Defaults.Fees)
	assert.Equal(t, "Red", s.Defaults.BallColor)
	assert.Equal(t, "custom-fast", s.Models.Fast)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, Default().Models.Search, s.Models.Search)
	assert.Equal(t, "Upcoming Match", s.Defaults.Header)
}

func TestLoad_MissingExplicitFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_MissingDefaultFileYieldsDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnsureConfigExists(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, EnsureConfigExists())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	// A second run leaves the existing file alone.
	require.NoError(t, EnsureConfigExists())
}
