// Package models defines the record and API types shared by the server,
// the dataset loader, and the CLI.
package models

// Record is one searchable entry: a flat map of field names to text values.
// The dataset loader guarantees an "id" field is present.
type Record map[string]string

// ID returns the record's identifier, or "" when missing.
func (r Record) ID() string {
	return r["id"]
}

// Field returns the named field's value, or "" when the record lacks it.
func (r Record) Field(name string) string {
	return r[name]
}
