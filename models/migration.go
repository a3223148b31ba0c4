package models

import (
	"log"

	"github.com/fuelchain/stationlog_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Organization{}, &Unit{}, &Entry{},
		&User{}, &NotificationPreference{}, &Member{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
