package efi

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of record variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindWork
	KindManifestation
	KindItem
)

// String returns the schema category of the kind.
func (k Kind) String() string {
	switch k {
	case KindWork:
		return "avefi:WorkVariant"
	case KindManifestation:
		return "avefi:Manifestation"
	case KindItem:
		return "avefi:Item"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// IsValid returns true if the Kind is a defined variant.
func (k Kind) IsValid() bool {
	return k >= KindWork && k <= KindItem
}

// MarshalText encodes the kind as its schema category.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a schema category into a kind.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := KindForCategory(string(text))
	if !ok {
		return &ModelError{Slot: -1, Category: string(text)}
	}
	*k = kind
	return nil
}

// KindForCategory maps a JSON category discriminator to a Kind.
func KindForCategory(category string) (Kind, bool) {
	switch category {
	case "avefi:WorkVariant":
		return KindWork, true
	case "avefi:Manifestation":
		return KindManifestation, true
	case "avefi:Item":
		return KindItem, true
	default:
		return KindUnknown, false
	}
}

// Reference attribute names as they appear in the schema.
const (
	AttrIsPartOf          = "is_part_of"
	AttrIsVariantOf       = "is_variant_of"
	AttrSameAs            = "same_as"
	AttrIsManifestationOf = "is_manifestation_of"
	AttrIsItemOf          = "is_item_of"
	AttrIsCopyOf          = "is_copy_of"
	AttrIsDerivativeOf    = "is_derivative_of"
)

// referenceAttributes lists, per kind, the outgoing reference attributes
// that take part in the reference graph. has_item on manifestations is not
// followed: items point upwards.
var referenceAttributes = map[Kind][]string{
	KindWork:          {AttrIsPartOf, AttrIsVariantOf},
	KindManifestation: {AttrIsManifestationOf, AttrSameAs},
	KindItem:          {AttrIsItemOf, AttrIsCopyOf, AttrIsDerivativeOf},
}

// ReferenceAttributes returns the ordered reference attribute names of kind.
func ReferenceAttributes(kind Kind) ([]string, error) {
	attrs, ok := referenceAttributes[kind]
	if !ok {
		return nil, &ModelError{Slot: -1, Kind: kind}
	}
	return attrs, nil
}

// Refs is a normalized list of references. In JSON it may be written as a
// single identifier object or as a list.
type Refs []Identifier

// Title is a display title with an optional ordering form.
type Title struct {
	Type            string `json:"type,omitempty"`
	HasName         string `json:"has_name"`
	HasOrderingName string `json:"has_ordering_name,omitempty"`
}

// Agent is a person or body taking part in an activity.
type Agent struct {
	Type    string `json:"type,omitempty"`
	HasName string `json:"has_name"`
	SameAs  Refs   `json:"same_as,omitempty"`
}

// Name returns the display name.
func (a Agent) Name() string { return a.HasName }

// GeographicName is a place an event is located in.
type GeographicName struct {
	HasName string `json:"has_name"`
	SameAs  Refs   `json:"same_as,omitempty"`
}

// Name returns the display name.
func (g GeographicName) Name() string { return g.HasName }

// Genre classifies a work.
type Genre struct {
	HasName string `json:"has_name"`
	SameAs  Refs   `json:"same_as,omitempty"`
}

// Name returns the display name.
func (g Genre) Name() string { return g.HasName }

// Subject is a topic of a work.
type Subject struct {
	HasName string `json:"has_name"`
	SameAs  Refs   `json:"same_as,omitempty"`
}

// Name returns the display name.
func (s Subject) Name() string { return s.HasName }

// Activity groups the agents acting in one role during an event.
type Activity struct {
	Category string  `json:"category,omitempty"`
	Type     string  `json:"type,omitempty"`
	HasAgent []Agent `json:"has_agent,omitempty"`
}

// Event is a production, publication or similar event.
type Event struct {
	Category    string           `json:"category,omitempty"`
	Type        string           `json:"type,omitempty"`
	HasDate     string           `json:"has_date,omitempty"`
	HasActivity []Activity       `json:"has_activity,omitempty"`
	LocatedIn   []GeographicName `json:"located_in,omitempty"`
}

// Record is one Work, Manifestation or Item. Fields that do not apply to
// the record's Kind are left empty.
//
// A decoded record keeps its JSON bytes. It encodes back to them unchanged
// until a typed field is edited; after that the typed fields replace their
// keys and the keys not modelled here are kept.
type Record struct {
	Kind Kind

	HasIdentifier       []Identifier
	HasSourceKey        []string
	HasPrimaryTitle     Title
	HasAlternativeTitle []Title
	HasEvent            []Event

	// Work only
	HasGenre   []Genre
	HasSubject []Subject

	// Manifestation only
	HasNote []string

	IsPartOf          Refs
	IsVariantOf       Refs
	SameAs            Refs
	IsManifestationOf Refs
	IsItemOf          Refs
	IsCopyOf          Refs
	IsDerivativeOf    Refs

	raw     json.RawMessage
	decoded []byte
}

// References returns the values of the named reference attribute.
// Unknown attribute names yield nil.
func (r *Record) References(attr string) Refs {
	switch attr {
	case AttrIsPartOf:
		return r.IsPartOf
	case AttrIsVariantOf:
		return r.IsVariantOf
	case AttrSameAs:
		return r.SameAs
	case AttrIsManifestationOf:
		return r.IsManifestationOf
	case AttrIsItemOf:
		return r.IsItemOf
	case AttrIsCopyOf:
		return r.IsCopyOf
	case AttrIsDerivativeOf:
		return r.IsDerivativeOf
	default:
		return nil
	}
}

// Label identifies the record in messages: its kind and first identifier.
func (r *Record) Label() string {
	if len(r.HasIdentifier) == 0 {
		return r.Kind.String() + " <no identifier>"
	}
	return r.Kind.String() + " " + r.HasIdentifier[0].ID
}

// PrimaryIdentifier returns the first identifier, or the zero value.
func (r *Record) PrimaryIdentifier() Identifier {
	if len(r.HasIdentifier) == 0 {
		return Identifier{}
	}
	return r.HasIdentifier[0]
}

// Batch is an ordered collection of records produced by one conversion run.
type Batch []*Record
