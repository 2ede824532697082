package efi_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/av-efi/eficonv/pkg/efi"
)

const sampleBatch = `[
  {
    "category": "avefi:WorkVariant",
    "type": "Monographic",
    "has_identifier": [{"category": "avefi:LocalResource", "id": "w1"}],
    "has_primary_title": {"type": "PreferredTitle", "has_name": "Der Tunnel"},
    "has_event": [{"category": "avefi:ProductionEvent", "has_date": "1933", "located_in": [{"has_name": "Deutschland"}]}],
    "same_as": [{"category": "avefi:DOIResource", "id": "10.5072/x"}]
  },
  {
    "category": "avefi:Manifestation",
    "has_identifier": [{"category": "avefi:LocalResource", "id": "m1"}],
    "has_primary_title": {"type": "TitleProper", "has_name": "Der Tunnel"},
    "is_manifestation_of": {"category": "avefi:LocalResource", "id": "w1"},
    "in_language": [{"code": "deu", "usage": ["SpokenLanguage"]}]
  },
  {
    "category": "avefi:Item",
    "has_identifier": [{"category": "avefi:LocalResource", "id": "i1"}],
    "has_primary_title": {"type": "TitleProper", "has_name": "Der Tunnel"},
    "is_item_of": {"category": "avefi:LocalResource", "id": "m1"},
    "is_copy_of": [{"category": "avefi:LocalResource", "id": "i0"}, {"category": "avefi:AVefiResource", "id": "21.11155/abc"}]
  }
]`

func TestBatch_UnmarshalJSON(t *testing.T) {
	var batch efi.Batch
	require.NoError(t, json.Unmarshal([]byte(sampleBatch), &batch))
	require.Len(t, batch, 3)

	assert.Equal(t, efi.KindWork, batch[0].Kind)
	assert.Equal(t, efi.KindManifestation, batch[1].Kind)
	assert.Equal(t, efi.KindItem, batch[2].Kind)

	assert.Equal(t, "Der Tunnel", batch[0].HasPrimaryTitle.HasName)
	assert.Equal(t, "1933", batch[0].HasEvent[0].HasDate)
	assert.Equal(t, efi.Refs{efi.External(efi.CategoryDOI, "10.5072/x")}, batch[0].SameAs)

	// single object normalized to a list
	assert.Equal(t, efi.Refs{efi.Local("w1")}, batch[1].IsManifestationOf)
	assert.Equal(t, efi.Refs{efi.Local("m1")}, batch[2].References(efi.AttrIsItemOf))
	assert.Len(t, batch[2].IsCopyOf, 2)
}

func TestBatch_UnmarshalJSON_UnknownCategory(t *testing.T) {
	data := `[
  {"category": "avefi:WorkVariant", "has_identifier": [{"category": "avefi:LocalResource", "id": "w1"}]},
  {"category": "avefi:Collection", "has_identifier": [{"category": "avefi:LocalResource", "id": "c1"}]}
]`
	var batch efi.Batch
	err := json.Unmarshal([]byte(data), &batch)
	require.Error(t, err)

	var modelErr *efi.ModelError
	require.True(t, errors.As(err, &modelErr), "expected ModelError, got %T", err)
	assert.Equal(t, 1, modelErr.Slot)
	assert.Equal(t, "avefi:Collection", modelErr.Category)
	assert.True(t, errors.Is(err, efi.ErrUnknownRecordKind))
}

func TestRecord_MarshalJSON_PreservesUnknownFields(t *testing.T) {
	var batch efi.Batch
	require.NoError(t, json.Unmarshal([]byte(sampleBatch), &batch))

	out, err := json.Marshal(batch[1])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "in_language")
}

func TestRecord_MarshalJSON_BuiltInCode(t *testing.T) {
	item := &efi.Record{
		Kind:            efi.KindItem,
		HasIdentifier:   []efi.Identifier{efi.Local("i1")},
		HasPrimaryTitle: efi.Title{HasName: "Copy 1"},
		IsItemOf:        efi.Refs{efi.Local("m1")},
	}

	out, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "avefi:Item", decoded["category"])
	// is_item_of is single-valued
	assert.IsType(t, map[string]any{}, decoded["is_item_of"])

	var back efi.Record
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, item.IsItemOf, back.IsItemOf)
	assert.Equal(t, item.HasIdentifier, back.HasIdentifier)
}

func TestRecord_MarshalJSON_RejectsMultipleSingleValued(t *testing.T) {
	item := efi.Record{
		Kind:          efi.KindItem,
		HasIdentifier: []efi.Identifier{efi.Local("i1")},
		IsItemOf:      efi.Refs{efi.Local("m1"), efi.Local("m2")},
	}
	_, err := json.Marshal(item)
	assert.Error(t, err)
}

func TestReferenceAttributes(t *testing.T) {
	tests := []struct {
		kind efi.Kind
		want []string
	}{
		{efi.KindWork, []string{"is_part_of", "is_variant_of"}},
		{efi.KindManifestation, []string{"is_manifestation_of", "same_as"}},
		{efi.KindItem, []string{"is_item_of", "is_copy_of", "is_derivative_of"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := efi.ReferenceAttributes(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := efi.ReferenceAttributes(efi.KindUnknown)
	assert.True(t, errors.Is(err, efi.ErrUnknownRecordKind))
}

func TestIdentifier_Equality(t *testing.T) {
	seen := map[efi.Identifier]bool{efi.Local("x"): true}
	assert.True(t, seen[efi.Identifier{Category: efi.CategoryLocal, ID: "x"}])
	assert.False(t, seen[efi.External(efi.CategoryAVefi, "x")])
	assert.True(t, efi.Local("x").IsLocal())
	assert.False(t, efi.External(efi.CategoryGND, "x").IsLocal())
	assert.Equal(t, "avefi:LocalResource.x", efi.Local("x").String())
}

func TestRecord_MarshalJSON_UnchangedKeepsBytes(t *testing.T) {
	raw := `{"category":"avefi:Item","has_identifier":[{"category":"avefi:LocalResource","id":"i1"}],` +
		`"has_primary_title":{"has_name":"old"},"is_item_of":{"category":"avefi:LocalResource","id":"m1"},"has_format":[{"type":"Film"}]}`

	var rec efi.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	out, err := json.Marshal(&rec)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestRecord_MarshalJSON_EditedFieldsWin(t *testing.T) {
	raw := `{"category":"avefi:Item","has_identifier":[{"category":"avefi:LocalResource","id":"i1"}],` +
		`"has_primary_title":{"has_name":"old"},"is_item_of":{"category":"avefi:LocalResource","id":"m1"},` +
		`"is_copy_of":[{"category":"avefi:LocalResource","id":"i0"}],"has_format":[{"type":"Film"}]}`

	tests := []struct {
		name  string
		edit  func(r *efi.Record)
		check func(t *testing.T, decoded map[string]any)
	}{
		{
			name: "title",
			edit: func(r *efi.Record) { r.HasPrimaryTitle.HasName = "new" },
			check: func(t *testing.T, decoded map[string]any) {
				assert.Equal(t, map[string]any{"has_name": "new"}, decoded["has_primary_title"])
			},
		},
		{
			name: "reference cleared",
			edit: func(r *efi.Record) { r.IsCopyOf = nil },
			check: func(t *testing.T, decoded map[string]any) {
				assert.NotContains(t, decoded, "is_copy_of")
			},
		},
		{
			name: "element edited in place",
			edit: func(r *efi.Record) { r.IsItemOf[0].ID = "m2" },
			check: func(t *testing.T, decoded map[string]any) {
				assert.Equal(t, map[string]any{"category": "avefi:LocalResource", "id": "m2"}, decoded["is_item_of"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec efi.Record
			require.NoError(t, json.Unmarshal([]byte(raw), &rec))
			tt.edit(&rec)

			out, err := json.Marshal(&rec)
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(out, &decoded))
			tt.check(t, decoded)
			assert.Equal(t, "avefi:Item", decoded["category"])
			assert.Contains(t, decoded, "has_format")

			var back efi.Record
			require.NoError(t, json.Unmarshal(out, &back))
			assert.Equal(t, rec.HasPrimaryTitle, back.HasPrimaryTitle)
			assert.Equal(t, rec.IsItemOf, back.IsItemOf)
		})
	}
}

func TestKind_Text(t *testing.T) {
	for _, k := range []efi.Kind{efi.KindWork, efi.KindManifestation, efi.KindItem} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got efi.Kind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	var k efi.Kind
	err := k.UnmarshalText([]byte("avefi:Collection"))
	assert.True(t, errors.Is(err, efi.ErrUnknownRecordKind))
}
