package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Migrate inspects the scalar PRAGMA user_version counter and applies the
// six numbered migrations in order, each wrapped in its own transaction so
// partial application is impossible.
func Migrate(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	ladder := []func(*sql.Tx) error{
		migrate1CreateBaseTables,
		migrate2AddShadowIdentity,
		migrate3AddDisplayFields,
		migrate4TargetsPerWeekday,
		migrate5CreateWeightEntries,
		migrate6CreateUserSettings,
	}

	for i, step := range ladder {
		target := i + 1
		if version >= target {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", target, err)
		}

		if err := step(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", target, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: set user_version: %w", target, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", target, err)
		}

		slog.Info("applied migration", "version", target)
	}

	return nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// hasColumn checks for a column's presence before an ALTER TABLE, the
// SQLite PRAGMA table_info equivalent of an information_schema.columns
// lookup.
func hasColumn(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func tableExists(tx *sql.Tx, table string) (bool, error) {
	var name string
	err := tx.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// 1. Create the base tables.
func migrate1CreateBaseTables(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS foods (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			brand TEXT,
			barcode TEXT,
			calories_per_100g REAL NOT NULL DEFAULT 0,
			protein_per_100g REAL,
			carbs_per_100g REAL,
			fat_per_100g REAL,
			default_serving_g REAL,
			source TEXT NOT NULL DEFAULT 'user',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS meal_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			meal_type TEXT NOT NULL,
			food_id INTEGER NOT NULL REFERENCES foods(id),
			serving_g REAL NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			food_id INTEGER NOT NULL REFERENCES foods(id),
			portions REAL NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipe_id INTEGER NOT NULL REFERENCES recipes(id),
			food_id INTEGER NOT NULL REFERENCES foods(id),
			quantity_g REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS targets (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			calories REAL NOT NULL,
			protein_pct REAL,
			carbs_pct REAL,
			fat_pct REAL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create base tables: %w", err)
		}
	}
	// Partial index: SQLite UNIQUE already allows multiple NULLs, but this
	// is explicit about only constraining rows that actually have a barcode.
	if _, err := tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_foods_barcode ON foods(barcode) WHERE barcode IS NOT NULL`); err != nil {
		return fmt.Errorf("create unique barcode index: %w", err)
	}
	return nil
}

// 2. Add uuid/updated_at shadow columns to every sync-participating table;
// backfill; create unique uuid indexes; create tombstones and config tables.
func migrate2AddShadowIdentity(tx *sql.Tx) error {
	syncTables := []string{"foods", "meal_entries", "recipes", "recipe_ingredients"}

	for _, table := range syncTables {
		hasUUID, err := hasColumn(tx, table, "uuid")
		if err != nil {
			return err
		}
		if !hasUUID {
			if _, err := tx.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN uuid TEXT`, table)); err != nil {
				return fmt.Errorf("add %s.uuid: %w", table, err)
			}
		}

		hasUpdatedAt, err := hasColumn(tx, table, "updated_at")
		if err != nil {
			return err
		}
		if !hasUpdatedAt {
			if _, err := tx.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN updated_at DATETIME`, table)); err != nil {
				return fmt.Errorf("add %s.updated_at: %w", table, err)
			}
		}

		hasCreatedAt, err := hasColumn(tx, table, "created_at")
		if err != nil {
			return err
		}

		backfillSource := "CURRENT_TIMESTAMP"
		if hasCreatedAt {
			backfillSource = "created_at"
		}
		if _, err := tx.Exec(fmt.Sprintf(
			`UPDATE %s SET updated_at = %s WHERE updated_at IS NULL`, table, backfillSource,
		)); err != nil {
			return fmt.Errorf("backfill %s.updated_at: %w", table, err)
		}

		rows, err := tx.Query(fmt.Sprintf(`SELECT id FROM %s WHERE uuid IS NULL OR uuid = ''`, table))
		if err != nil {
			return fmt.Errorf("select %s rows needing uuid: %w", table, err)
		}
		var ids []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := tx.Exec(fmt.Sprintf(`UPDATE %s SET uuid = ? WHERE id = ?`, table), uuid.NewString(), id); err != nil {
				return fmt.Errorf("backfill %s.uuid for row %d: %w", table, id, err)
			}
		}

		idxName := fmt.Sprintf("idx_%s_uuid", table)
		if _, err := tx.Exec(fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s(uuid)`, idxName, table)); err != nil {
			return fmt.Errorf("create unique uuid index on %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS tombstones (
		uuid TEXT NOT NULL,
		table_name TEXT NOT NULL,
		deleted_at DATETIME NOT NULL,
		PRIMARY KEY (uuid, table_name)
	)`); err != nil {
		return fmt.Errorf("create tombstones table: %w", err)
	}

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS config (
		key TEXT PRIMARY KEY,
		value TEXT
	)`); err != nil {
		return fmt.Errorf("create config table: %w", err)
	}

	return nil
}

// 3. Add display_unit/display_quantity to meal_entries.
func migrate3AddDisplayFields(tx *sql.Tx) error {
	for _, col := range []struct{ name, ddl string }{
		{"display_unit", "ALTER TABLE meal_entries ADD COLUMN display_unit TEXT"},
		{"display_quantity", "ALTER TABLE meal_entries ADD COLUMN display_quantity REAL"},
	} {
		has, err := hasColumn(tx, "meal_entries", col.name)
		if err != nil {
			return err
		}
		if !has {
			if _, err := tx.Exec(col.ddl); err != nil {
				return fmt.Errorf("add meal_entries.%s: %w", col.name, err)
			}
		}
	}
	return nil
}

// 4. Restructure targets from singleton-by-id to keyed-by-day-of-week,
// expanding any pre-existing singleton row into seven per-day rows.
func migrate4TargetsPerWeekday(tx *sql.Tx) error {
	alreadyKeyed, err := hasColumn(tx, "targets", "day_of_week")
	if err != nil {
		return err
	}
	if alreadyKeyed {
		return nil
	}

	if _, err := tx.Exec(`CREATE TABLE targets_new (
		day_of_week INTEGER PRIMARY KEY CHECK (day_of_week BETWEEN 0 AND 6),
		calories REAL NOT NULL,
		protein_pct REAL,
		carbs_pct REAL,
		fat_pct REAL,
		updated_at DATETIME NOT NULL
	)`); err != nil {
		return fmt.Errorf("create targets_new: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`
		INSERT INTO targets_new (day_of_week, calories, protein_pct, carbs_pct, fat_pct, updated_at)
		SELECT d.day, t.calories, t.protein_pct, t.carbs_pct, t.fat_pct, ?
		FROM (
			SELECT 0 AS day UNION ALL SELECT 1 UNION ALL SELECT 2 UNION ALL
			SELECT 3 UNION ALL SELECT 4 UNION ALL SELECT 5 UNION ALL SELECT 6
		) d
		CROSS JOIN targets t
		WHERE t.id = 1
	`, now); err != nil {
		return fmt.Errorf("expand singleton target into per-weekday rows: %w", err)
	}

	if _, err := tx.Exec(`DROP TABLE targets`); err != nil {
		return fmt.Errorf("drop old targets table: %w", err)
	}
	if _, err := tx.Exec(`ALTER TABLE targets_new RENAME TO targets`); err != nil {
		return fmt.Errorf("rename targets_new to targets: %w", err)
	}
	return nil
}

// 5. Create weight_entries.
func migrate5CreateWeightEntries(tx *sql.Tx) error {
	exists, err := tableExists(tx, "weight_entries")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := tx.Exec(`CREATE TABLE weight_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL UNIQUE,
		weight_kg REAL NOT NULL,
		source TEXT NOT NULL DEFAULT 'manual',
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		uuid TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`); err != nil {
		return fmt.Errorf("create weight_entries: %w", err)
	}
	if _, err := tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_weight_entries_uuid ON weight_entries(uuid)`); err != nil {
		return fmt.Errorf("create unique uuid index on weight_entries: %w", err)
	}
	return nil
}

// 6. Create a user_settings key/value table.
func migrate6CreateUserSettings(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS user_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create user_settings: %w", err)
	}
	return nil
}
