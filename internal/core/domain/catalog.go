package domain

type CatalogStatus int

const (
	CatalogLoading CatalogStatus = iota
	CatalogLoaded
	CatalogLoadedEmpty
)

func (s CatalogStatus) String() string {
	switch s {
	case CatalogLoading:
		return "loading"
	case CatalogLoaded:
		return "loaded"
	case CatalogLoadedEmpty:
		return "loaded_empty"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s CatalogStatus) Terminal() bool {
	return s == CatalogLoaded || s == CatalogLoadedEmpty
}

type CatalogState struct {
	Status   CatalogStatus
	Products []Product
}

// CatalogStateOf returns the terminal state for the loaded products.
func CatalogStateOf(ps []Product) CatalogState {
	if len(ps) == 0 {
		return CatalogState{Status: CatalogLoadedEmpty}
	}
	return CatalogState{Status: CatalogLoaded, Products: ps}
}

func (s CatalogState) Product(id int64) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
