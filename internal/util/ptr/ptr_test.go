package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointers(t *testing.T) {
	t.Parallel()

	b := Bool(true)
	require.NotNil(t, b)
	assert.True(t, *b)

	i := Int(7)
	require.NotNil(t, i)
	assert.Equal(t, 7, *i)

	d := Duration(time.Second)
	require.NotNil(t, d)
	assert.Equal(t, time.Second, *d)

	f := To(1.5)
	require.NotNil(t, f)
	assert.InDelta(t, 1.5, *f, 1e-9)
}

func TestTo_ReturnsCopy(t *testing.T) {
	t.Parallel()

	v := 1
	p := To(v)
	*p = 2
	assert.Equal(t, 1, v)
}
