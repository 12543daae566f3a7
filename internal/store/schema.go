package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// quizResultsColumns holds the columns for the "quiz_results" table.
	quizResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "deck_id", Type: field.TypeInt},
		{Name: "deck_name", Type: field.TypeString},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "percentage", Type: field.TypeInt},
		{Name: "finished_at", Type: field.TypeInt64},
	}
	// quizResultsSchema holds the schema information for the "quiz_results" table.
	quizResultsSchema = &schema.Table{
		Name:       quizResultsTable,
		Columns:    quizResultsColumns,
		PrimaryKey: []*schema.Column{quizResultsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "quizresult_deck_id",
				Unique:  false,
				Columns: []*schema.Column{quizResultsColumns[3]},
			},
		},
	}
	// tables holds every table managed by the ent migration.
	tables = []*schema.Table{
		quizResultsSchema,
	}
)

// migrate creates or updates the ent-managed tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}

