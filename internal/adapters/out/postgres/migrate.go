package postgres

import (
	"fmt"

	"supply/internal/adapters/out/postgres/historyrepo"
	"supply/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates the sequences and tables of the service. It is idempotent.
func Migrate(db *gorm.DB) error {
	for _, seq := range []string{orderrepo.NumberSequence, historyrepo.EntrySequence} {
		if err := db.Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s", seq)).Error; err != nil {
			return fmt.Errorf("create sequence %s: %w", seq, err)
		}
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&historyrepo.EntryDTO{},
		&historyrepo.ItemLogDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Truncate empties every table. Sequences keep their values.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE order_items, orders, order_history, preparation_logs").Error
}
