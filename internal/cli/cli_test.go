package cli

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

func TestCloseReleasesTracked(t *testing.T) {
	var order []string
	stopped := false

	e := &Env{Log: zerolog.Nop(), stop: func() { stopped = true }}
	e.Track(closeFunc(func() error {
		order = append(order, "context")
		return nil
	}))
	e.Track(closeFunc(func() error {
		order = append(order, "camera")
		return errors.New("camera busy")
	}))

	e.Close()
	assert.Equal(t, []string{"camera", "context"}, order)
	assert.True(t, stopped)

	e.Close()
	assert.Len(t, order, 2, "tracked values are closed once")
}
