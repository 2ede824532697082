package efi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// UnmarshalJSON accepts a single identifier object, a list of them, or null.
func (r *Refs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []Identifier
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	default:
		var single Identifier
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*r = Refs{single}
		return nil
	}
}

// recordIn is the decoding view of a record.
type recordIn struct {
	Category            string       `json:"category"`
	HasIdentifier       []Identifier `json:"has_identifier"`
	HasSourceKey        []string     `json:"has_source_key"`
	HasPrimaryTitle     *Title       `json:"has_primary_title"`
	HasAlternativeTitle []Title      `json:"has_alternative_title"`
	HasEvent            []Event      `json:"has_event"`
	HasGenre            []Genre      `json:"has_genre"`
	HasSubject          []Subject    `json:"has_subject"`
	HasNote             []string     `json:"has_note"`
	IsPartOf            Refs         `json:"is_part_of"`
	IsVariantOf         Refs         `json:"is_variant_of"`
	SameAs              Refs         `json:"same_as"`
	IsManifestationOf   Refs         `json:"is_manifestation_of"`
	IsItemOf            Refs         `json:"is_item_of"`
	IsCopyOf            Refs         `json:"is_copy_of"`
	IsDerivativeOf      Refs         `json:"is_derivative_of"`
}

// recordOut is the encoding view of a record built in code. is_variant_of
// and is_item_of are single-valued in the schema.
type recordOut struct {
	Category            string       `json:"category"`
	HasIdentifier       []Identifier `json:"has_identifier,omitempty"`
	HasSourceKey        []string     `json:"has_source_key,omitempty"`
	HasPrimaryTitle     *Title       `json:"has_primary_title,omitempty"`
	HasAlternativeTitle []Title      `json:"has_alternative_title,omitempty"`
	HasEvent            []Event      `json:"has_event,omitempty"`
	HasGenre            []Genre      `json:"has_genre,omitempty"`
	HasSubject          []Subject    `json:"has_subject,omitempty"`
	HasNote             []string     `json:"has_note,omitempty"`
	IsPartOf            []Identifier `json:"is_part_of,omitempty"`
	IsVariantOf         *Identifier  `json:"is_variant_of,omitempty"`
	SameAs              []Identifier `json:"same_as,omitempty"`
	IsManifestationOf   []Identifier `json:"is_manifestation_of,omitempty"`
	IsItemOf            *Identifier  `json:"is_item_of,omitempty"`
	IsCopyOf            []Identifier `json:"is_copy_of,omitempty"`
	IsDerivativeOf      []Identifier `json:"is_derivative_of,omitempty"`
}

// UnmarshalJSON decodes a record and keeps its original bytes, so that
// fields not modelled here survive a load/dump round trip.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordIn
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, ok := KindForCategory(in.Category)
	if !ok {
		return &ModelError{Slot: -1, Category: in.Category}
	}

	*r = Record{
		Kind:                kind,
		HasIdentifier:       in.HasIdentifier,
		HasSourceKey:        in.HasSourceKey,
		HasAlternativeTitle: in.HasAlternativeTitle,
		HasEvent:            in.HasEvent,
		HasGenre:            in.HasGenre,
		HasSubject:          in.HasSubject,
		HasNote:             in.HasNote,
		IsPartOf:            in.IsPartOf,
		IsVariantOf:         in.IsVariantOf,
		SameAs:              in.SameAs,
		IsManifestationOf:   in.IsManifestationOf,
		IsItemOf:            in.IsItemOf,
		IsCopyOf:            in.IsCopyOf,
		IsDerivativeOf:      in.IsDerivativeOf,
		raw:                 append(json.RawMessage(nil), data...),
	}
	if in.HasPrimaryTitle != nil {
		r.HasPrimaryTitle = *in.HasPrimaryTitle
	}
	r.decoded = r.snapshot()
	return nil
}

// modelledKeys are the JSON keys decoded into typed Record fields.
var modelledKeys = []string{
	"category", "has_identifier", "has_source_key", "has_primary_title",
	"has_alternative_title", "has_event", "has_genre", "has_subject", "has_note",
	AttrIsPartOf, AttrIsVariantOf, AttrSameAs, AttrIsManifestationOf,
	AttrIsItemOf, AttrIsCopyOf, AttrIsDerivativeOf,
}

// snapshot encodes the typed fields as decoded, to detect later edits.
func (r Record) snapshot() []byte {
	title := r.HasPrimaryTitle
	data, _ := json.Marshal(recordIn{
		Category:            r.Kind.String(),
		HasIdentifier:       r.HasIdentifier,
		HasSourceKey:        r.HasSourceKey,
		HasPrimaryTitle:     &title,
		HasAlternativeTitle: r.HasAlternativeTitle,
		HasEvent:            r.HasEvent,
		HasGenre:            r.HasGenre,
		HasSubject:          r.HasSubject,
		HasNote:             r.HasNote,
		IsPartOf:            r.IsPartOf,
		IsVariantOf:         r.IsVariantOf,
		SameAs:              r.SameAs,
		IsManifestationOf:   r.IsManifestationOf,
		IsItemOf:            r.IsItemOf,
		IsCopyOf:            r.IsCopyOf,
		IsDerivativeOf:      r.IsDerivativeOf,
	})
	return data
}

// MarshalJSON returns the original bytes of a decoded record that was not
// modified since. A modified decoded record is re-encoded with its typed
// fields replacing the modelled keys and all other keys kept; a record
// built in code encodes its typed fields only.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 && bytes.Equal(r.snapshot(), r.decoded) {
		return r.raw, nil
	}
	typed, err := r.encodeTyped()
	if err != nil {
		return nil, err
	}
	if len(r.raw) == 0 {
		return typed, nil
	}
	return mergeModelled(r.raw, typed)
}

// mergeModelled overlays the modelled keys of typed onto raw. Modelled
// keys absent from typed are dropped from raw.
func mergeModelled(raw, typed []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	var changed map[string]json.RawMessage
	if err := json.Unmarshal(typed, &changed); err != nil {
		return nil, err
	}
	for _, key := range modelledKeys {
		if v, ok := changed[key]; ok {
			fields[key] = v
		} else {
			delete(fields, key)
		}
	}
	return json.Marshal(fields)
}

func (r Record) encodeTyped() ([]byte, error) {
	if !r.Kind.IsValid() {
		return nil, &ModelError{Slot: -1, Kind: r.Kind}
	}

	out := recordOut{
		Category:            r.Kind.String(),
		HasIdentifier:       r.HasIdentifier,
		HasSourceKey:        r.HasSourceKey,
		HasAlternativeTitle: r.HasAlternativeTitle,
		HasEvent:            r.HasEvent,
		HasGenre:            r.HasGenre,
		HasSubject:          r.HasSubject,
		HasNote:             r.HasNote,
		IsPartOf:            r.IsPartOf,
		SameAs:              r.SameAs,
		IsManifestationOf:   r.IsManifestationOf,
		IsCopyOf:            r.IsCopyOf,
		IsDerivativeOf:      r.IsDerivativeOf,
	}
	if r.HasPrimaryTitle != (Title{}) {
		title := r.HasPrimaryTitle
		out.HasPrimaryTitle = &title
	}
	var err error
	if out.IsVariantOf, err = singleRef(AttrIsVariantOf, r.IsVariantOf); err != nil {
		return nil, err
	}
	if out.IsItemOf, err = singleRef(AttrIsItemOf, r.IsItemOf); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func singleRef(attr string, refs Refs) (*Identifier, error) {
	switch len(refs) {
	case 0:
		return nil, nil
	case 1:
		id := refs[0]
		return &id, nil
	default:
		return nil, fmt.Errorf("%s is single-valued, got %d references", attr, len(refs))
	}
}

// UnmarshalJSON decodes a JSON array of records. A record with an unknown
// category fails the whole batch with a *ModelError carrying its position.
func (b *Batch) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	batch := make(Batch, 0, len(raws))
	for i, raw := range raws {
		rec := &Record{}
		if err := rec.UnmarshalJSON(raw); err != nil {
			var modelErr *ModelError
			if errors.As(err, &modelErr) {
				modelErr.Slot = i
				return modelErr
			}
			return fmt.Errorf("record #%d: %w", i, err)
		}
		batch = append(batch, rec)
	}
	*b = batch
	return nil
}
