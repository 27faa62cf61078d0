package models

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

Compares the columns that exist in the database against the columns the Go
models map, and lists every column nothing in Go accounts for.

1. Set GENERATE_COLUMN_REPORT=true (report only) or GENERATE_MODELS=true
   (migrate, report, then generate typed query helpers into ./query).
2. Run the server binary; it exits once the task completes.

Example output:

	table=blogs unmapped=[legacy_slug] msg="columns not accounted for in model"
	total=1 msg="column mismatch report complete"
*/

// persistedModels lists every model owned by this service, keyed by table.
var persistedModels = map[string]any{
	"blogs": &Blog{},
}

// GenerateModels migrates the schema, prints the column report and writes
// gorm/gen query helpers for every persisted model.
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Msg("Migrating models...")
	if err := migrateDB.AutoMigrate(&Blog{}); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}
	log.Info().Msg("Database migration completed successfully")

	if _, err := GenerateColumnMismatchReport(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./query",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Blog{})
	g.Execute()

	log.Info().Msg("Model generation complete")
	return nil
}

// GenerateColumnMismatchReport logs, per table, the database columns that no
// model field maps to, and returns them keyed by table.
func GenerateColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string, len(persistedModels))
	total := 0

	for _, tableName := range sortedTables() {
		model := persistedModels[tableName]
		logger := log.With().Str("table", tableName).Logger()

		if !db.Migrator().HasTable(model) {
			logger.Info().Msg("Table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", tableName, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		modelFields, err := modelColumns(db.NamingStrategy, model)
		if err != nil {
			return nil, err
		}

		mismatches := findColumnMismatches(dbColumns, modelFields)
		report[tableName] = mismatches
		total += len(mismatches)

		if len(mismatches) > 0 {
			logger.Warn().Strs("unmapped", mismatches).Msg("columns not accounted for in model")
		} else {
			logger.Info().Msg("All columns are accounted for in the model")
		}
	}

	log.Info().Int("total", total).Msg("column mismatch report complete")
	return report, nil
}

// modelColumns resolves the column names GORM maps for model.
func modelColumns(namer schema.Namer, model any) ([]string, error) {
	s, err := schema.Parse(model, &sync.Map{}, namer)
	if err != nil {
		return nil, fmt.Errorf("parse model schema: %w", err)
	}
	return s.DBNames, nil
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}

func sortedTables() []string {
	tables := make([]string, 0, len(persistedModels))
	for table := range persistedModels {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
