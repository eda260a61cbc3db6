package shortid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorInvalidLength(t *testing.T) {
	_, err := NewGenerator(0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestNew(t *testing.T) {
	g, err := NewGenerator(DefaultLength)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := g.New()
		require.NoError(t, err)
		assert.Len(t, id, DefaultLength)
		assert.True(t, g.Valid(id), "generated id %q should be valid", id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestValid(t *testing.T) {
	g := &Generator{Length: 5}
	for id, want := range map[string]bool{
		"AB12C":  true,
		"00000":  true,
		"ab12c":  false,
		"AB12":   false,
		"AB12CD": false,
		"AB-2C":  false,
		"":       false,
	} {
		assert.Equal(t, want, g.Valid(id), "id %q", id)
	}
}
