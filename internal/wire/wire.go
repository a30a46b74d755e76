// Package wire provides dependency injection for the GRN application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/grn/internal/adapters/sqlite"
	"github.com/example/grn/internal/app"
	"github.com/example/grn/internal/db"
	"github.com/example/grn/internal/ports/primary"
)

var (
	receiptService primary.ReceiptService
	unitService    primary.UnitService
	intakeService  primary.IntakeService
	once           sync.Once
)

// ReceiptService returns the singleton ReceiptService instance.
func ReceiptService() primary.ReceiptService {
	once.Do(initServices)
	return receiptService
}

// UnitService returns the singleton UnitService instance.
func UnitService() primary.UnitService {
	once.Do(initServices)
	return unitService
}

// IntakeService returns the singleton IntakeService instance.
func IntakeService() primary.IntakeService {
	once.Do(initServices)
	return intakeService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	receipts := sqlite.NewReceiptStore(database)
	outbound := sqlite.NewOutboundStore(database)
	orders := sqlite.NewPurchaseOrderSource(database)
	suppliers := sqlite.NewSupplierDirectory(database)

	receiptService = app.NewReceiptService(receipts, outbound, orders)
	unitService = app.NewUnitService(receipts)
	intakeService = app.NewIntakeService(orders, suppliers)
}
