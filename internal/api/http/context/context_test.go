package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/authkeeper/internal/model"
)

func TestManager(t *testing.T) {
	m := NewManager()

	_, ok := m.GetClaimsFromContext(context.Background())
	assert.False(t, ok)

	claims := model.Claims{Email: "a@x.com", Role: model.RoleAdmin}
	ctx := m.SetClaimsToContext(context.Background(), claims)
	got, ok := m.GetClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)
}
