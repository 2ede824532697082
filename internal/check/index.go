package check

import "github.com/av-efi/eficonv/pkg/efi"

type indexEntry struct {
	slot int
	ids  []efi.Identifier
}

// IdentityIndex maps every identifier in a batch to the slot of the record
// owning it and to that record's full identifier list.
type IdentityIndex struct {
	entries map[efi.Identifier]indexEntry
}

// BuildIdentityIndex indexes every record of batch for which skip returns
// false. skip may be nil. An identifier owned by two different records
// fails with *efi.DuplicateIdentifierError; a record without identifiers
// fails with *efi.MissingIdentifierError.
func BuildIdentityIndex(batch efi.Batch, skip func(slot int) bool) (*IdentityIndex, error) {
	idx := &IdentityIndex{entries: make(map[efi.Identifier]indexEntry)}
	for slot, rec := range batch {
		if skip != nil && skip(slot) {
			continue
		}
		if len(rec.HasIdentifier) == 0 {
			return nil, &efi.MissingIdentifierError{Slot: slot, Kind: rec.Kind}
		}
		for _, id := range rec.HasIdentifier {
			if prev, ok := idx.entries[id]; ok && prev.slot != slot {
				return nil, &efi.DuplicateIdentifierError{
					Identifier: id,
					FirstSlot:  prev.slot,
					SecondSlot: slot,
					SecondKind: rec.Kind,
				}
			}
			idx.entries[id] = indexEntry{slot: slot, ids: rec.HasIdentifier}
		}
	}
	return idx, nil
}

// Lookup returns the slot and identifiers of the record owning id.
func (x *IdentityIndex) Lookup(id efi.Identifier) (slot int, ids []efi.Identifier, ok bool) {
	e, ok := x.entries[id]
	return e.slot, e.ids, ok
}

// Contains reports whether some live record owns id.
func (x *IdentityIndex) Contains(id efi.Identifier) bool {
	_, ok := x.entries[id]
	return ok
}

// Remove forgets ids.
func (x *IdentityIndex) Remove(ids []efi.Identifier) {
	for _, id := range ids {
		delete(x.entries, id)
	}
}

// size is the number of indexed identifiers.
func (x *IdentityIndex) size() int {
	return len(x.entries)
}
