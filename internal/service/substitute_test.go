package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/backend/internal/models"
	"github.com/mealforge/backend/internal/testdb"
)

func TestSubstitutes(t *testing.T) {
	svc := NewSubstituteService(testdb.New(t))
	ctx := context.Background()

	created, err := svc.AddSubstitute(ctx, " Butter ", []string{"margarine", "coconut oil"})
	require.NoError(t, err)
	assert.Equal(t, "butter", created.Ingredient)

	// Lookups are case-insensitive.
	entry, err := svc.GetSubstitute(ctx, "BUTTER")
	require.NoError(t, err)
	assert.Equal(t, models.JSONStringArray{"margarine", "coconut oil"}, entry.Substitutes)

	_, err = svc.GetSubstitute(ctx, "saffron")
	assert.ErrorIs(t, err, ErrSubstituteNotFound)

	_, err = svc.AddSubstitute(ctx, "butter", []string{"ghee"})
	assert.ErrorIs(t, err, ErrSubstituteExists)

	_, err = svc.AddSubstitute(ctx, "  ", []string{"anything"})
	assert.Error(t, err)

	_, err = svc.AddSubstitute(ctx, "milk", []string{"oat milk"})
	require.NoError(t, err)

	entries, err := svc.ListSubstitutes(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "butter", entries[0].Ingredient)
	assert.Equal(t, "milk", entries[1].Ingredient)
}
