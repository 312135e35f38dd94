package parser

import "strings"

// EntryTypeField is the pseudo-field name that resolves to a record's entry type.
const EntryTypeField = "ENTRYTYPE"

// Record is one bibliographic entry as read from a .bib file.
type Record struct {
	// Raw is the verbatim source text of the entry, line terminators included.
	Raw       string
	Key       string
	EntryType string
	// Fields maps lower-cased field names to their captured values.
	// It is nil when the record was parsed with Options.OrderField set.
	Fields map[string]string
	// OrderField and OrderValue hold the single designated field of the
	// ordering-restricted variant.
	OrderField string
	OrderValue string
}

// Field returns the value of the named field, or "" when absent.
func (r *Record) Field(name string) string {
	if r == nil {
		return ""
	}
	if strings.EqualFold(name, EntryTypeField) {
		return r.EntryType
	}
	name = strings.ToLower(name)
	if r.Fields != nil {
		if v, ok := r.Fields[name]; ok {
			return v
		}
	}
	if r.OrderField != "" && name == r.OrderField {
		return r.OrderValue
	}
	return ""
}

// Restricted reports whether the record only carries its order value.
func (r *Record) Restricted() bool { return r.Fields == nil && r.OrderField != "" }

// FieldNames returns the names of the fields present on the record.
func (r *Record) FieldNames() []string {
	if r.Fields == nil {
		if r.OrderField != "" {
			return []string{r.OrderField}
		}
		return nil
	}
	out := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		out = append(out, k)
	}
	return out
}
