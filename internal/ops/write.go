package ops

import (
	"fmt"

	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// Create validates the supplied fields against the spec and, only when every
// check passes, allocates an id and publishes the new record. The returned
// record is the post-image.
func Create(w world.World, alloc *world.Allocator, clock validate.Clock, spec WriteSpec, args map[string]any) (string, world.Record, error) {
	// 1. Required set
	if missing := validate.MissingFields(args, spec.requiredFields()); len(missing) > 0 {
		return "", nil, envelope.MissingField(missing[0])
	}

	// 2. Unknown fields
	allowed := append(spec.updatableNames(), spec.Approvals...)
	if extra := validate.ExtraFields(args, allowed); len(extra) > 0 {
		return "", nil, envelope.UnknownFields(extra)
	}

	// 3. Per-field constraints
	for _, f := range spec.Fields {
		v, ok := args[f.Name]
		if !ok || v == nil {
			continue
		}
		if err := checkField(w, f, v); err != nil {
			return "", nil, err
		}
	}

	// 4. Approvals
	if err := checkApprovals(args, spec.Approvals, "create"); err != nil {
		return "", nil, err
	}

	// 5. Uniqueness
	table := w[spec.Table]
	for _, uf := range spec.Unique {
		v, ok := args[uf].(string)
		if !ok {
			continue
		}
		if !validate.UniqueCaseInsensitive(table, uf, v, "") {
			return "", nil, envelope.Duplicate(spec.Entity, uf, v)
		}
	}

	// 6. Publish
	id := alloc.Next(w, spec.Table)
	now := clock.Now()
	rec := world.Record{}
	for k, v := range spec.Defaults {
		rec[k] = v
	}
	for _, f := range spec.Fields {
		if v, ok := args[f.Name]; ok && v != nil {
			rec[f.Name] = normalizeField(f, v)
		}
	}
	rec[spec.IDField] = id
	rec["created_at"] = now
	rec["updated_at"] = now
	w.Table(spec.Table)[id] = rec

	return id, rec.Clone(), nil
}

// Update validates the supplied changes and publishes a copy of the record
// with them applied. Non-provided fields are unchanged; an explicit null
// clears a nullable field; approval booleans are consumed, not stored.
func Update(w world.World, clock validate.Clock, spec WriteSpec, id string, args map[string]any) (world.Record, error) {
	current := w.Get(spec.Table, id)
	if current == nil {
		return nil, envelope.MissingReferent(spec.Table, id)
	}

	// 1. Unknown fields
	allowed := append(spec.updatableNames(), spec.Approvals...)
	if extra := validate.ExtraFields(args, allowed); len(extra) > 0 {
		return nil, envelope.UnknownFields(extra)
	}

	// 2. At least one updatable field
	touched := 0
	for _, name := range spec.updatableNames() {
		if _, ok := args[name]; ok {
			touched++
		}
	}
	if touched == 0 {
		return nil, envelope.Failf("no updatable field provided for %s update", spec.Entity)
	}

	// 3. Per-field constraints; null only clears nullable fields
	for _, f := range spec.Fields {
		v, ok := args[f.Name]
		if !ok {
			continue
		}
		if v == nil {
			if !f.Nullable {
				return nil, envelope.Failf("field %s cannot be cleared", f.Name)
			}
			continue
		}
		if err := checkField(w, f, v); err != nil {
			return nil, err
		}
	}

	// 4. Approvals
	if err := checkApprovals(args, spec.Approvals, "update"); err != nil {
		return nil, err
	}

	// 5. Uniqueness, excluding the row being updated
	table := w[spec.Table]
	for _, uf := range spec.Unique {
		v, ok := args[uf].(string)
		if !ok {
			continue
		}
		if !validate.UniqueCaseInsensitive(table, uf, v, id) {
			return nil, envelope.Duplicate(spec.Entity, uf, v)
		}
	}

	// 6. Status-transition rules
	if next, ok := args["status"].(string); ok {
		from, _ := current["status"].(string)
		if from != next && validate.InEnum(next, spec.ForbiddenTransitions[from]) {
			return nil, envelope.ForbiddenTransition(from, next)
		}
	}

	// 7. Copy-then-swap publication
	rec := current.Clone()
	for _, f := range spec.Fields {
		v, ok := args[f.Name]
		if !ok {
			continue
		}
		if v == nil {
			delete(rec, f.Name)
			continue
		}
		rec[f.Name] = normalizeField(f, v)
	}
	rec["updated_at"] = clock.Now()
	w[spec.Table][id] = rec

	return rec.Clone(), nil
}

// Transition is the status-mutation form of Update (cancel, close, revoke,
// offboard, ...): its only effect is the status move plus the updated_at
// refresh. A no-op transition is rejected as already-in-state.
func Transition(w world.World, clock validate.Clock, spec WriteSpec, id, next string) (world.Record, error) {
	current := w.Get(spec.Table, id)
	if current == nil {
		return nil, envelope.MissingReferent(spec.Table, id)
	}

	from, _ := current["status"].(string)
	if from == next {
		return nil, envelope.AlreadyInState(fmt.Sprintf("%s %s", spec.Entity, id), next)
	}
	if validate.InEnum(next, spec.ForbiddenTransitions[from]) {
		return nil, envelope.ForbiddenTransition(from, next)
	}

	rec := current.Clone()
	rec["status"] = next
	rec["updated_at"] = clock.Now()
	w[spec.Table][id] = rec

	return rec.Clone(), nil
}

// checkField runs the kernel predicates declared for one supplied field.
func checkField(w world.World, f Field, v any) error {
	if !validate.NonEmpty(v) {
		return envelope.EmptyField(f.Name)
	}

	if len(f.Enum) > 0 {
		s, ok := v.(string)
		if !ok || !validate.InEnum(s, f.Enum) {
			return envelope.InvalidEnum(f.Name, fmt.Sprintf("%v", v), f.Enum)
		}
	}

	if f.Format != FormatNone {
		s, ok := v.(string)
		if !ok {
			return envelope.BadFormat(f.Name, formatName(f.Format))
		}
		if !checkFormat(f.Format, s) {
			return envelope.BadFormat(f.Name, formatName(f.Format))
		}
	}

	if f.Positive && !validate.Positive(v) {
		return envelope.NotPositive(f.Name)
	}

	if f.Ref != nil {
		id, ok := v.(string)
		if !ok {
			return envelope.MissingReferent(f.Ref.Table, fmt.Sprintf("%v", v))
		}
		found, status := validate.ExistsWithStatus(w, f.Ref.Table, id, f.Ref.Statuses)
		if !found {
			if !validate.Exists(w, f.Ref.Table, id) {
				return envelope.MissingReferent(f.Ref.Table, id)
			}
			return envelope.WrongReferentStatus(f.Ref.Table, id, status, f.Ref.Statuses)
		}
	}

	return nil
}

// checkApprovals requires every declared consent boolean to be present and
// truthy. The error names the full required set so the agent learns the
// complete requirement at once.
func checkApprovals(args map[string]any, approvals []string, action string) error {
	if len(approvals) == 0 {
		return nil
	}
	for _, name := range approvals {
		if !validate.Truthy(args[name]) {
			return envelope.ApprovalsRequired(action, approvals)
		}
	}
	return nil
}

// normalizeField canonicalizes values before persistence. Dates accepted in
// MM-DD-YYYY form are stored canonically.
func normalizeField(f Field, v any) any {
	if f.Format == FormatDate {
		if s, ok := v.(string); ok {
			if canonical, ok := validate.CanonicalDate(s); ok {
				return canonical
			}
		}
	}
	return v
}

func checkFormat(f Format, s string) bool {
	switch f {
	case FormatDate:
		_, ok := validate.CanonicalDate(s)
		return ok
	case FormatDateTime:
		return validate.ValidDateTime(s)
	case FormatEmail:
		return validate.ValidEmail(s)
	case FormatTaxID:
		return validate.ValidTaxID(s)
	case FormatBankAccount:
		return validate.ValidBankAccount(s)
	case FormatRouting:
		return validate.ValidRoutingNumber(s)
	case FormatMAC:
		return validate.ValidMAC(s)
	case FormatPhone:
		return validate.ValidPhone(s)
	default:
		return true
	}
}

func formatName(f Format) string {
	switch f {
	case FormatDate:
		return "YYYY-MM-DD"
	case FormatDateTime:
		return "YYYY-MM-DDTHH:MM:SS"
	case FormatEmail:
		return "an email address"
	case FormatTaxID:
		return "NNN-NN-NNNN"
	case FormatBankAccount:
		return "8-17 digits"
	case FormatRouting:
		return "9 digits"
	case FormatMAC:
		return "a MAC address"
	case FormatPhone:
		return "a phone number"
	default:
		return "a string"
	}
}
