package seed

import (
	"context"
	"testing"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMenu(t *testing.T) {
	items, err := DefaultMenu()
	require.NoError(t, err)
	require.Len(t, items, 11)

	byName := map[string]model.MenuItem{}
	for _, it := range items {
		byName[it.Name] = it
	}
	assert.True(t, byName["Americano"].Price.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, "Non Coffee", byName["Iced Matcha"].Category)

	geprek := byName["Ayam Geprek"]
	require.NotNil(t, geprek.Options)
	assert.Equal(t, "sambal", geprek.Options.Type)
	assert.Equal(t, []string{"matah", "bawang"}, geprek.Options.Options)
	assert.Equal(t, "Tidak Pedas", byName["Nasi Goreng"].Options.Labels["tidak"])
	assert.Nil(t, byName["Donut"].Options)
}

func TestParseMenu_RejectsIncompleteItems(t *testing.T) {
	_, err := ParseMenu([]byte("items:\n  - name: Ghost\n    price: 1000\n"))
	assert.Error(t, err)

	_, err = ParseMenu([]byte("items: [oops"))
	assert.Error(t, err)
}

func TestMenu_OnlySeedsEmptyCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewMenuRepo(db)
	ctx := context.Background()

	n, err := Menu(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	n, err = Menu(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, int64(11), testutil.Count(t, db, &model.MenuItem{}))

	items, err := repo.FindByCategory(ctx, "Food")
	require.NoError(t, err)
	assert.Len(t, items, 4)
}
