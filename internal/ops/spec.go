// Package ops implements the operators shared by every domain tool: the
// write skeleton (create / update / status transition) and the Discover
// query. Domain catalogs declare their rules as data; ops executes them
// uniformly, validating everything before mutating anything.
package ops

// Format names a string format the validation kernel can check.
type Format int

const (
	FormatNone Format = iota
	FormatDate
	FormatDateTime
	FormatEmail
	FormatTaxID
	FormatBankAccount
	FormatRouting
	FormatMAC
	FormatPhone
)

// Ref declares a foreign reference: the value must be the id of an existing
// record in Table, optionally restricted to the given statuses.
type Ref struct {
	Table    string
	Statuses []string
}

// Field declares one writable field and its constraints.
type Field struct {
	Name     string
	Required bool // create only
	Enum     []string
	Format   Format
	Ref      *Ref
	Positive bool
	// Nullable fields may be cleared by an explicit null on update. Fields
	// outside the nullable subset reject null and empty strings alike.
	Nullable bool
}

// WriteSpec declares the rules for writes against one table.
type WriteSpec struct {
	Table   string
	Entity  string // prose name, e.g. "fund"
	IDField string // conventional id name, e.g. "fund_id"
	Fields  []Field
	// Unique lists fields under a per-table case-insensitive uniqueness
	// constraint.
	Unique []string
	// Approvals lists the consent booleans that must be present and truthy
	// on the request. They are consumed at the boundary, never persisted.
	Approvals []string
	// Defaults are applied on create for fields the request omits.
	Defaults map[string]any
	// ForbiddenTransitions maps a current status to the statuses it must
	// not move to.
	ForbiddenTransitions map[string][]string
}

func (s WriteSpec) field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

func (s WriteSpec) requiredFields() []string {
	var req []string
	for _, f := range s.Fields {
		if f.Required {
			req = append(req, f.Name)
		}
	}
	return req
}

// updatableNames returns the field names an update may touch.
func (s WriteSpec) updatableNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}
