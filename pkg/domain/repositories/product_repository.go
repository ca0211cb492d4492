package repositories

import "github.com/solvex/demandplan/pkg/domain/entities"

// ProductRepository provides access to product stock and procurement snapshots
type ProductRepository interface {
	GetSnapshot(productID entities.ProductID) (*entities.ProductSnapshot, error)
	GetAllSnapshots() ([]*entities.ProductSnapshot, error)
	LoadSnapshots(snapshots []*entities.ProductSnapshot) error
}
