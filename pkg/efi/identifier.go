package efi

// Category names the registry an Identifier belongs to.
type Category string

// Identifier categories known to the AVefi schema. Only CategoryLocal is
// scoped to a conversion batch; every other category names an identifier
// that already exists outside it.
const (
	CategoryLocal      Category = "avefi:LocalResource"
	CategoryAVefi      Category = "avefi:AVefiResource"
	CategoryDOI        Category = "avefi:DOIResource"
	CategoryEIDR       Category = "avefi:EIDRResource"
	CategoryFilmportal Category = "avefi:FilmportalResource"
	CategoryGND        Category = "avefi:GNDResource"
	CategoryISIL       Category = "avefi:ISILResource"
	CategoryVIAF       Category = "avefi:VIAFResource"
	CategoryWikidata   Category = "avefi:WikidataResource"
)

// IsLocal reports whether identifiers of this category are batch-scoped.
func (c Category) IsLocal() bool {
	return c == CategoryLocal
}

// Identifier is a (category, id) pair. It is comparable and is used
// directly as a map key.
type Identifier struct {
	Category Category `json:"category"`
	ID       string   `json:"id"`
}

// Local returns a batch-scoped identifier.
func Local(id string) Identifier {
	return Identifier{Category: CategoryLocal, ID: id}
}

// External returns an identifier issued by the registry named by category.
func External(category Category, id string) Identifier {
	return Identifier{Category: category, ID: id}
}

// IsLocal reports whether the identifier is batch-scoped.
func (i Identifier) IsLocal() bool {
	return i.Category.IsLocal()
}

func (i Identifier) String() string {
	return string(i.Category) + "." + i.ID
}
