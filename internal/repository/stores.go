package repository

import (
	"gorm.io/gorm"

	"github.com/shieldline/warranty-service/internal/store"
)

// NewStores assembles the postgres-backed store bundle.
func NewStores(db *gorm.DB) store.Stores {
	return store.Stores{
		Contracts:   NewContractRepository(db),
		Batches:     NewBatchRepository(db),
		Products:    NewProductRepository(db),
		Pricing:     NewPricingRepository(db),
		Addons:      NewAddonRepository(db),
		Dealerships: NewDealershipRepository(db),
		Employees:   NewEmployeeRepository(db),
		Documents:   NewDocumentRepository(db),
	}
}
