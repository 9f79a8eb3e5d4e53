package models

import (
	"log"

	"github.com/vyasarsoft/invoices_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Invoice{}, &InvoiceItem{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
