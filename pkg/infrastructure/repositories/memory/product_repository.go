package memory

import (
	"fmt"
	"sort"

	"github.com/solvex/demandplan/pkg/domain/entities"
	"github.com/solvex/demandplan/pkg/domain/repositories"
)

// ProductRepository provides in-memory product snapshot storage
type ProductRepository struct {
	snapshots    []entities.ProductSnapshot
	snapshotsMap map[entities.ProductID]int
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		snapshots:    make([]entities.ProductSnapshot, 0, expectedProducts),
		snapshotsMap: make(map[entities.ProductID]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadSnapshots loads product snapshots into the repository
func (r *ProductRepository) LoadSnapshots(snapshots []*entities.ProductSnapshot) error {
	for _, snapshot := range snapshots {
		r.AddSnapshot(*snapshot)
	}
	return nil
}

// AddSnapshot adds or replaces a product snapshot
func (r *ProductRepository) AddSnapshot(snapshot entities.ProductSnapshot) {
	if index, exists := r.snapshotsMap[snapshot.ProductID]; exists {
		r.snapshots[index] = snapshot
		return
	}
	r.snapshotsMap[snapshot.ProductID] = len(r.snapshots)
	r.snapshots = append(r.snapshots, snapshot)
}

// GetSnapshot returns the snapshot for a product
func (r *ProductRepository) GetSnapshot(productID entities.ProductID) (*entities.ProductSnapshot, error) {
	index, exists := r.snapshotsMap[productID]
	if !exists {
		return nil, fmt.Errorf("product not found: %s", productID)
	}
	return &r.snapshots[index], nil
}

// GetAllSnapshots returns all snapshots ordered by product ID
func (r *ProductRepository) GetAllSnapshots() ([]*entities.ProductSnapshot, error) {
	snapshots := make([]*entities.ProductSnapshot, 0, len(r.snapshots))
	for i := range r.snapshots {
		snapshots = append(snapshots, &r.snapshots[i])
	}
	sort.Slice(snapshots, func(a, b int) bool {
		return snapshots[a].ProductID < snapshots[b].ProductID
	})
	return snapshots, nil
}
