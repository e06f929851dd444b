package maestro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLogLine(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		message string
		args    []any
		want    string
	}{
		{
			name:    "message only",
			level:   "INF",
			message: "session invalidated by unauthorized response",
			want:    "[INF] MAESTRO session invalidated by unauthorized response",
		},
		{
			name:    "key value pairs",
			level:   "WRN",
			message: "hydrate skipped",
			args:    []any{"status", SessionAuthenticated, "error", errors.New("invalid transition")},
			want:    "[WRN] MAESTRO hydrate skipped status=authenticated error=invalid transition",
		},
		{
			name:    "trailing unpaired argument",
			level:   "ERR",
			message: "session operation failed",
			args:    []any{"op", "login", "dangling"},
			want:    "[ERR] MAESTRO session operation failed op=login dangling",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatLogLine(tt.level, tt.message, tt.args...))
		})
	}
}
