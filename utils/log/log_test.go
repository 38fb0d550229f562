package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProdEnv(t *testing.T) {
	t.Setenv("TSLAMOOD_ENV", "prod")
	assert.True(t, IsProdEnv())

	t.Setenv("TSLAMOOD_ENV", "dev")
	assert.False(t, IsProdEnv())

	t.Setenv("TSLAMOOD_ENV", "")
	assert.False(t, IsProdEnv())
}
