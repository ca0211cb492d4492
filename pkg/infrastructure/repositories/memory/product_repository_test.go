package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

func testSnapshot(t *testing.T, productID string, currentStock int64) *entities.ProductSnapshot {
	t.Helper()
	snapshot, err := entities.NewProductSnapshot(
		entities.ProductID(productID), "Test Product",
		entities.Quantity(currentStock), 10,
		decimal.NewFromInt(100), decimal.NewFromInt(150))
	require.NoError(t, err)
	return snapshot
}

func TestProductRepository_GetSnapshot(t *testing.T) {
	repo := NewProductRepository(2)
	require.NoError(t, repo.LoadSnapshots([]*entities.ProductSnapshot{
		testSnapshot(t, "SKU001", 100),
		testSnapshot(t, "SKU002", 200),
	}))

	snapshot, err := repo.GetSnapshot("SKU002")
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(200), snapshot.CurrentStock)

	_, err = repo.GetSnapshot("MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestProductRepository_AddSnapshotReplaces(t *testing.T) {
	repo := NewProductRepository(1)
	repo.AddSnapshot(*testSnapshot(t, "SKU001", 100))
	repo.AddSnapshot(*testSnapshot(t, "SKU001", 250))

	snapshot, err := repo.GetSnapshot("SKU001")
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(250), snapshot.CurrentStock)

	all, err := repo.GetAllSnapshots()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductRepository_GetAllSnapshotsSorted(t *testing.T) {
	repo := NewProductRepository(3)
	repo.AddSnapshot(*testSnapshot(t, "SKU003", 1))
	repo.AddSnapshot(*testSnapshot(t, "SKU001", 2))
	repo.AddSnapshot(*testSnapshot(t, "SKU002", 3))

	all, err := repo.GetAllSnapshots()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entities.ProductID("SKU001"), all[0].ProductID)
	assert.Equal(t, entities.ProductID("SKU002"), all[1].ProductID)
	assert.Equal(t, entities.ProductID("SKU003"), all[2].ProductID)
}
