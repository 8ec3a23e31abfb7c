package models

// CatalogItem is the normalized, enriched unit of the output catalog.
// Created once per source row during a build and immutable afterwards; the
// whole set is superseded wholesale by the next successful build.
type CatalogItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Stock          int     `json:"stock"`
	Barcode        string  `json:"barcode"`
	FullGroup      string  `json:"full_group"`
	GroupName      string  `json:"group_name"`
	Modification   string  `json:"modification"`
	Article        string  `json:"article"`
	Description    string  `json:"description"`
	PhotoReference string  `json:"photo_reference"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	InStock        bool    `json:"in_stock"`
	SearchText     string  `json:"search_text"`
}

// Statistics holds the aggregate counters computed during an enriched build.
type Statistics struct {
	InStock         int `json:"in_stock"`
	OutOfStock      int `json:"out_of_stock"`
	TotalCategories int `json:"total_categories"`
	TotalBrands     int `json:"total_brands"`
}

// Catalog is the enriched-mode output document.
type Catalog struct {
	Success     bool          `json:"success"`
	Timestamp   string        `json:"timestamp"`
	GeneratedAt string        `json:"generated_at"`
	TotalItems  int           `json:"total_items"`
	Statistics  Statistics    `json:"statistics"`
	Categories  []string      `json:"categories"`
	Brands      []string      `json:"brands"`
	Items       []CatalogItem `json:"items"`
}

// RawRow is a pass-through row used in grouped mode: every source column
// mapped to its cell value, nil for not-a-value cells.
type RawRow map[string]any

// Grouped is the grouped-mode output document: raw rows bucketed by the
// model segment of the full-group column.
type Grouped struct {
	GeneratedAt string              `json:"generated_at"`
	TotalItems  int                 `json:"total_items"`
	Items       map[string][]RawRow `json:"items"`
}
