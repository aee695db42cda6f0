package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"tagged validation", New(Validation, "bad input"), Validation},
		{"tagged not found", New(NotFound, "missing"), NotFound},
		{"wrapped in fmt", fmt.Errorf("context: %w", New(Duplicate, "exists")), Duplicate},
		{"untagged", errors.New("boom"), Internal},
		{"wrap carries cause", Wrap(Query, "read failed", errors.New("conn reset")), Query},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "missing", New(NotFound, "missing").Error())

	wrapped := Wrap(Internal, "write failed", errors.New("disk full"))
	assert.Equal(t, "write failed: disk full", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "disk full")
}
