// Package schema keeps the admission tables current across releases.
// Evolution is forward-only and additive: tables and columns are created
// when missing, never dropped or renamed, and a re-run against a current
// schema is a metadata read and nothing else.
package schema

import (
	"fmt"
	"strings"

	"admissions-backend/internal/domain/application"
	"admissions-backend/internal/domain/credential"

	"gorm.io/gorm"
)

// SchemaError is fatal at startup: the store refused a table or column add
// for a reason other than "already exists". Operator intervention required.
type SchemaError struct {
	Table  string
	Column string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema: add column %s.%s: %v", e.Table, e.Column, e.Err)
	}
	return fmt.Sprintf("schema: create table %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// retrofitColumns were added to admissions after its initial release; older
// live stores may carry the table without them.
var retrofitColumns = []string{
	"user_id",
	"submit_ip",
	"approved_at",
	"approved_by",
	"disapproved_at",
	"disapproved_by",
	"disapproval_reason",
}

// Ensure inspects the live schema and adds whatever is missing. Safe to call
// on every process start and safe to race with another process doing the
// same: a concurrent "already exists" failure is treated as success.
func Ensure(db *gorm.DB) error {
	m := db.Migrator()

	tables := []any{
		&application.Application{},
		&credential.Credential{},
		&credential.PlaintextEscrow{},
	}
	for _, model := range tables {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil && !alreadyExists(err) {
			return &SchemaError{Table: tableName(db, model), Err: err}
		}
	}

	for _, col := range retrofitColumns {
		if m.HasColumn(&application.Application{}, col) {
			continue
		}
		if err := m.AddColumn(&application.Application{}, col); err != nil && !alreadyExists(err) {
			return &SchemaError{Table: application.Application{}.TableName(), Column: col, Err: err}
		}
	}
	return nil
}

func alreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column")
}

func tableName(db *gorm.DB, model any) string {
	if t, ok := model.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	stmt := &gorm.Statement{DB: db}
	_ = stmt.Parse(model)
	return stmt.Schema.Table
}
