package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestWrapKeepsChain(t *testing.T) {
	wrapped := Wrap(io.EOF, "read config")

	assert.EqualError(t, wrapped, "read config: EOF")
	assert.True(t, Is(wrapped, io.EOF))
	assert.True(t, Is(WithStack(wrapped), io.EOF))
}

func TestNilPassThrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithStack(nil))
}

func TestAsFindsTypedError(t *testing.T) {
	err := Wrap(&codedError{code: 7}, "outer")

	var target *codedError
	assert.True(t, As(err, &target))
	assert.Equal(t, 7, target.code)
}

func TestConstructorsCarryStack(t *testing.T) {
	for _, err := range []error{New("boom"), Errorf("boom %d", 1), Wrap(io.EOF, "ctx")} {
		assert.Contains(t, fmt.Sprintf("%+v", err), "TestConstructorsCarryStack")
	}
}
