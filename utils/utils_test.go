package utils

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	hay := []string{"xyz", "unknown"}
	assert.True(t, ContainsString(hay, "xyz"))
	assert.False(t, ContainsString(hay, "XYZ"))
	assert.False(t, ContainsString(nil, "xyz"))
}

func TestTextToSha256HashNormalizesInput(t *testing.T) {
	assert.Equal(t, TextToSha256Hash("https://example.com/a"), TextToSha256Hash("  HTTPS://Example.com/a "))
	assert.NotEqual(t, TextToSha256Hash("a"), TextToSha256Hash("b"))
}

func TestImmediatePrintErrorPassesErrorThrough(t *testing.T) {
	err := errors.New("upsert failed")
	assert.Same(t, err, ImmediatePrintError(err))
	assert.NoError(t, ImmediatePrintError(nil))
}
