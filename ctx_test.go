package maestro_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	maestro "github.com/maestro-marketing/go-maestro"
)

func TestIdentityFromContext(t *testing.T) {
	tests := []struct {
		name     string
		setupCtx func() context.Context
		wantUser *maestro.User
		wantOK   bool
	}{
		{
			name: "should return user when present in context",
			setupCtx: func() context.Context {
				user := &maestro.User{ID: 7, Email: "ada@example.com"}
				return maestro.WithIdentity(context.Background(), user)
			},
			wantUser: &maestro.User{ID: 7, Email: "ada@example.com"},
			wantOK:   true,
		},
		{
			name: "should return false when no identity in context",
			setupCtx: func() context.Context {
				return context.Background()
			},
			wantUser: nil,
			wantOK:   false,
		},
		{
			name: "should allow an explicit nil identity",
			setupCtx: func() context.Context {
				return maestro.WithIdentity(context.Background(), nil)
			},
			wantUser: nil,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser, gotOK := maestro.IdentityFromContext(tt.setupCtx())

			assert.Equal(t, tt.wantOK, gotOK)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestWithIdentityDoesNotLeakAcrossContexts(t *testing.T) {
	parent := context.Background()
	child := maestro.WithIdentity(parent, &maestro.User{ID: 1})

	_, ok := maestro.IdentityFromContext(parent)
	assert.False(t, ok)

	got, ok := maestro.IdentityFromContext(child)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.ID)
}
