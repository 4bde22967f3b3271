// Package database opens GORM connections and inspects table schemas.
//
// Connect supports MySQL, PostgreSQL and SQLite, selected by Config.Driver.
// GetTableColumns reads the live column list of a table so that the mismatch
// store can compare it with its models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "invoice_mismatch_log")
package database
