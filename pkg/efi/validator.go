package efi

// SchemaValidator checks a single record against the structural schema
// of the target format. Any returned error aborts the validation run.
type SchemaValidator interface {
	ValidateRecord(rec *Record) error
}

// SchemaValidatorFunc adapts a plain function to SchemaValidator.
type SchemaValidatorFunc func(rec *Record) error

// ValidateRecord calls f(rec).
func (f SchemaValidatorFunc) ValidateRecord(rec *Record) error { return f(rec) }
