package check

import (
	"strings"

	"github.com/av-efi/eficonv/pkg/efi"
)

func work(id string, parents ...efi.Identifier) *efi.Record {
	return &efi.Record{
		Kind:            efi.KindWork,
		HasIdentifier:   []efi.Identifier{efi.Local(id)},
		HasPrimaryTitle: efi.Title{HasName: "Title of " + id},
		IsPartOf:        parents,
	}
}

func manifestation(id string, works ...efi.Identifier) *efi.Record {
	return &efi.Record{
		Kind:              efi.KindManifestation,
		HasIdentifier:     []efi.Identifier{efi.Local(id)},
		HasPrimaryTitle:   efi.Title{HasName: "Title of " + id},
		IsManifestationOf: works,
	}
}

func item(id string, manifestations ...efi.Identifier) *efi.Record {
	return &efi.Record{
		Kind:            efi.KindItem,
		HasIdentifier:   []efi.Identifier{efi.Local(id)},
		HasPrimaryTitle: efi.Title{HasName: "Title of " + id},
		IsItemOf:        manifestations,
	}
}

func longTitle(n int) string {
	return strings.Repeat("x", n)
}

func ids(batch efi.Batch) []string {
	out := make([]string, 0, len(batch))
	for _, rec := range batch {
		out = append(out, rec.PrimaryIdentifier().ID)
	}
	return out
}

func removedIDs(report *Report) []string {
	out := make([]string, 0, len(report.Removed))
	for _, r := range report.Removed {
		out = append(out, r.Record.ID)
	}
	return out
}
