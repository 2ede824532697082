package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/av-efi/eficonv/pkg/efi"
)

// ErrSchemaNotFound is returned by Load when the schema file does not exist.
var ErrSchemaNotFound = errors.New("schema file not found")

// DefaultResourceURL names the schema resource when Options.URL is empty.
const DefaultResourceURL = "https://raw.githubusercontent.com/AV-EFI/av-efi-schema/main/project/jsonschema/avefi_schema/model.schema.json"

// Options selects the schema to compile.
type Options struct {
	// File is the local schema document.
	File string
	// Ref is an optional JSON pointer fragment such as "#/$defs/Item"
	// selecting a subschema. Empty means the document root.
	Ref string
	// URL identifies the document for resolving relative references.
	URL string
}

// Validator checks records against a compiled schema.
// Safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// Load reads and compiles the schema described by opts.
func Load(opts Options) (*Validator, error) {
	data, err := os.ReadFile(opts.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, opts.File)
		}
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return Compile(data, opts.URL, opts.Ref)
}

// Compile compiles an in-memory schema document.
func Compile(document []byte, url, ref string) (*Validator, error) {
	if url == "" {
		url = DefaultResourceURL
	}
	if ref != "" && ref[0] != '#' {
		ref = "#" + ref
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(document)); err != nil {
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}
	sch, err := c.Compile(url + ref)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: sch}, nil
}

// ValidateRecord checks the JSON form of rec. The returned error is a
// *jsonschema.ValidationError when the record does not conform.
func (v *Validator) ValidateRecord(rec *efi.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return v.schema.Validate(pruneEmpty(doc))
}

var _ efi.SchemaValidator = (*Validator)(nil)

// pruneEmpty drops null values, empty strings, empty lists and empty
// objects from decoded JSON, recursively. Lists keep their non-empty
// elements in order.
func pruneEmpty(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			if e = pruneEmpty(e); !isEmpty(e) {
				out[k] = e
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, e := range t {
			if e = pruneEmpty(e); !isEmpty(e) {
				out = append(out, e)
			}
		}
		return out
	default:
		return v
	}
}

func isEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]interface{}:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}
