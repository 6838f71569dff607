// Package audit appends mutation records to a world-state audit table.
// Emission is elected per tool; the core never requires it.
package audit

import (
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
	"go.uber.org/zap"
)

// Conventional audit table names.
const (
	TrailsTable     = "audit_trails"
	AccessLogsTable = "access_logs"
)

// Entry describes one past mutation. FieldName/OldValue/NewValue are set
// only for single-field updates.
type Entry struct {
	ReferenceID   string
	ReferenceType string
	Action        string // create, update, delete, approve, ...
	UserID        string
	FieldName     string
	OldValue      any
	NewValue      any
}

// Writer appends audit entries using the shared id allocator and pinned
// clock.
type Writer struct {
	table  string
	alloc  *world.Allocator
	clock  validate.Clock
	logger *zap.Logger
}

// NewWriter creates a writer for the named audit table. A nil logger
// disables logging.
func NewWriter(table string, alloc *world.Allocator, clock validate.Clock, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{table: table, alloc: alloc, clock: clock, logger: logger}
}

// Record appends the entry to the audit table and returns its id. The write
// happens only after the calling tool has finished validating; a tool that
// fails never reaches Record.
func (w *Writer) Record(ws world.World, e Entry) string {
	id := w.alloc.Next(ws, w.table)

	rec := world.Record{
		"audit_id":       id,
		"reference_id":   e.ReferenceID,
		"reference_type": e.ReferenceType,
		"action":         e.Action,
		"user_id":        e.UserID,
		"created_at":     w.clock.Now(),
	}
	if e.FieldName != "" {
		rec["field_name"] = e.FieldName
		rec["old_value"] = e.OldValue
		rec["new_value"] = e.NewValue
	}
	ws.Table(w.table)[id] = rec

	w.logger.Debug("audit entry recorded",
		zap.String("table", w.table),
		zap.String("audit_id", id),
		zap.String("reference_type", e.ReferenceType),
		zap.String("reference_id", e.ReferenceID),
		zap.String("action", e.Action),
	)
	return id
}
