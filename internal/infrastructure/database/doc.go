// Package database provides SQLite connectivity for the Gray Logic Audio
// journal.
//
// It opens the database with WAL mode and a busy timeout, and applies
// versioned migrations read from any fs.FS (normally the embedded
// migrations package). The device registry itself is never persisted; the
// database only holds the audit journal.
//
// Usage:
//
//	db, err := database.Open(ctx, cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
//
// Migrations are additive: new columns must be nullable or carry a default,
// and each .up.sql should ship with a .down.sql.
package database
