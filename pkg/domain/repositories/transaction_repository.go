package repositories

import (
	"time"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// TransactionRepository provides read access to the inventory transaction log
type TransactionRepository interface {
	GetProductEvents(
		productID entities.ProductID,
		since time.Time,
	) ([]*entities.TransactionEvent, error)
	GetCustomerEvents(
		customerID entities.CustomerID,
		since time.Time,
	) ([]*entities.TransactionEvent, error)
	GetAllEvents(since time.Time) ([]*entities.TransactionEvent, error)
	LoadEvents(events []*entities.TransactionEvent) error
}
