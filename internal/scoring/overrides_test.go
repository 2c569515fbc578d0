package scoring_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/hpprio/internal/scoring"
)

func TestDefaultOverrides_Loads(t *testing.T) {
	o := scoring.DefaultOverrides()
	require.NotNil(t, o)
	assert.Equal(t, 60, o.Apply("Futhark Torque +2", 0))
	assert.Equal(t, 0, o.Apply("Sibyl Scarf", 0))
}

func TestLoadOverrides_EmptyPathUsesDefaults(t *testing.T) {
	o, err := scoring.LoadOverrides("")
	require.NoError(t, err)
	assert.Equal(t, 40, o.Apply("Cryptic Earring", 0))
}

func TestLoadOverrides_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ov.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: 1
unity:
  "Test Earring": 70
jse_neck:
  "Warrior's Beads +2": 99
`), 0644))

	o, err := scoring.LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, 70, o.Apply("test earring", 10))
	assert.Equal(t, 99, o.Apply("War. Beads +2", 0))
	assert.Equal(t, 0, o.Apply("Cryptic Earring", 0), "a file replaces the built-in tables")
}

func TestParseOverrides_RejectsBadVersion(t *testing.T) {
	_, err := scoring.ParseOverrides([]byte("version: 2\n"))
	assert.Error(t, err)
}

func TestParseOverrides_RejectsNegative(t *testing.T) {
	_, err := scoring.ParseOverrides([]byte("version: 1\nunity:\n  Foo: -5\n"))
	assert.Error(t, err)
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	_, err := scoring.LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestOverrides_NilIsIdentity(t *testing.T) {
	var o *scoring.Overrides
	assert.Equal(t, 17, o.Apply("Cryptic Earring", 17))
}
