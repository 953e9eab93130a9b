package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: ErrDocumentNotFound, want: http.StatusNotFound},
		{name: "wrapped", err: fmt.Errorf("approve: %w", ErrArrangementNotFound), want: http.StatusNotFound},
		{name: "forbidden", err: ErrForbidden, want: http.StatusForbidden},
		{name: "validation", err: BadRequest("email is required"), want: http.StatusBadRequest},
		{name: "plain error", err: errors.New("db down"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
