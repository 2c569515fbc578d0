package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParses(t *testing.T) {
	assert.True(t, parses(`sets.idle = { head={ name="Nyame Helm", priority=91 } }`, "ok.lua"))
	assert.False(t, parses(`sets.idle = { head={ name="Nyame Helm", priority=91 }`, "bad.lua"))
}
