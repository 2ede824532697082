// Package schema validates records against the AVefi JSON schema.
//
// The schema is compiled once with github.com/santhosh-tekuri/jsonschema/v5
// and applied to the JSON form of each record after empty values have
// been pruned, so that optional attributes written as null or [] by a
// converter do not trip "minItems" or type constraints.
//
// The schema document is read from a local file. Relative references
// inside it resolve against Options.URL, the published location.
//
// # Example Usage
//
//	v, err := schema.Load(schema.Options{File: path})
//	if err != nil {
//	    return err
//	}
//	checker := check.New(check.WithSchemaValidator(v))
package schema
