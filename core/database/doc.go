// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL, PostgreSQL or SQLite
// connections based on the application's configuration. The archive store
// (feature/gachalog/store) runs on top of the returned *gorm.DB.
//
// # Connect
//
// The Connect function selects the dialector from Config.Driver, applies
// connection pool settings and verifies the connection with a ping bounded by
// Config.TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The integrity feature uses it
// to verify that the archive tables match the GORM entities.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "gacha_items")
package database
