package gphoto2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleRegistry(t *testing.T) {
	a, b := new(int), new(int)

	ha := register(a)
	hb := register(b)
	assert.NotZero(t, ha)
	assert.NotEqual(t, ha, hb)

	assert.Same(t, a, lookup(ha))
	assert.Same(t, b, lookup(hb))

	unregister(ha)
	assert.Nil(t, lookup(ha))
	assert.Same(t, b, lookup(hb))

	unregister(hb)
	assert.Nil(t, lookup(0))
}
