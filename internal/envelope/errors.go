package envelope

import (
	"fmt"
	"strings"
)

// Error is a tool failure carried as a value until the tool boundary folds it
// into a failure envelope. Halt marks prose the agent must not retry.
type Error struct {
	Msg  string
	Halt bool
}

func (e *Error) Error() string { return e.Msg }

// Failf builds a retryable failure.
func Failf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Haltf builds a non-retryable failure.
func Haltf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Halt: true}
}

// InvalidAction rejects a discriminator outside the tool's declared set.
func InvalidAction(field, value string, allowed []string) *Error {
	return Haltf("invalid %s %q; must be one of: %s", field, value, strings.Join(allowed, ", "))
}

// MissingField rejects a required field that is absent or null.
func MissingField(name string) *Error {
	return Failf("missing required field: %s", name)
}

// EmptyField rejects a required field that is present but whitespace-only.
func EmptyField(name string) *Error {
	return Failf("field %s must not be empty", name)
}

// UnknownFields rejects input fields outside the tool's allowed set.
func UnknownFields(names []string) *Error {
	return Failf("unknown fields: %s", strings.Join(names, ", "))
}

// InvalidEnum rejects a value outside a field's declared set.
func InvalidEnum(field, value string, allowed []string) *Error {
	return Failf("invalid %s %q; must be one of: %s", field, value, strings.Join(allowed, ", "))
}

// BadFormat rejects a string that fails its declared format.
func BadFormat(field, expected string) *Error {
	return Failf("invalid %s format; expected %s", field, expected)
}

// NotPositive rejects a non-positive amount where positivity is required.
func NotPositive(field string) *Error {
	return Failf("%s must be greater than 0", field)
}

// OutOfRange rejects a violated numeric or date comparison.
func OutOfRange(detail string) *Error {
	return Failf("%s", detail)
}

// Duplicate rejects a uniqueness-constraint violation.
func Duplicate(entity, field, value string) *Error {
	return Failf("duplicate %s: a record with %s %q already exists", entity, field, value)
}

// MissingReferent rejects a foreign id absent from its target table.
func MissingReferent(table, id string) *Error {
	return Failf("referenced %s %q does not exist", singular(table), id)
}

// WrongReferentStatus rejects a foreign record present but in a disallowed
// status.
func WrongReferentStatus(table, id, status string, allowed []string) *Error {
	return Haltf("%s %q has status %q; required status: %s",
		singular(table), id, status, strings.Join(allowed, " or "))
}

// ForbiddenTransition rejects a status move disallowed by table rules.
// The prose is part of the agent-facing contract; keep it stable.
func ForbiddenTransition(from, to string) *Error {
	return Failf("Invalid transition from %s to %s", from, to)
}

// ApprovalsRequired rejects a write whose required consent booleans are
// absent or not truthy.
func ApprovalsRequired(action string, approvals []string) *Error {
	return Haltf("%s required for %s", strings.Join(approvals, " and "), action)
}

// NotAuthorized rejects a caller that failed both authorization tiers.
func NotAuthorized(detail string) *Error {
	return Haltf("%s", detail)
}

// AlreadyInState rejects a status transition that is a no-op.
func AlreadyInState(entity, status string) *Error {
	return Haltf("%s is already %s", entity, status)
}

// singular trims a conventional plural table name for prose ("funds" → "fund").
// "statuses"-style plurals do not occur in table names.
func singular(table string) string {
	if strings.HasSuffix(table, "s") && len(table) > 1 {
		return table[:len(table)-1]
	}
	return table
}
