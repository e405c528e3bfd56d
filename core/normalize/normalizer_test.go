package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInline(t *testing.T) {
	got, err := New().Normalize(`Read <strong>this</strong> and <a href="https://example.com">that</a>.`)
	require.NoError(t, err)
	assert.Equal(t, "Read **this** and [that](https://example.com).", got)
}

func TestNormalizeTrims(t *testing.T) {
	got, err := New().Normalize("  <em>x</em>  ")
	require.NoError(t, err)
	assert.Equal(t, "*x*", got)
}
