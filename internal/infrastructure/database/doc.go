// Package database owns the SQLite recipe library.
//
// Open applies the daemon's pragmas (WAL, foreign keys, busy timeout)
// and pins the pool to one connection to match SQLite's single-writer
// locking. Migrate applies the embedded schema scripts at boot;
// scripts are named YYYYMMDD_HHMMSS_description.{up,down}.sql and run
// each in their own transaction.
//
// Migrations are additive only so downgrades stay safe: new columns
// are nullable or defaulted, and nothing is dropped or renamed.
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
