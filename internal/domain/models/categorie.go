package models

// Categorie is the catalog category shared by produits and packs santé.
type Categorie string

const (
	CategorieSoinSante             Categorie = "soin_sante"
	CategorieCosmetique            Categorie = "cosmetique"
	CategorieComplementAlimentaire Categorie = "complement_alimentaire"
	CategorieElectronique          Categorie = "electronique"
	CategorieElectromenager        Categorie = "electromenager"
	CategorieAgroalimentaire       Categorie = "agroalimentaire"
	CategorieUsageQuotidien        Categorie = "usage_quotidien"
	CategorieTextile               Categorie = "textile"
)

var categorieLabels = map[Categorie]string{
	CategorieSoinSante:             "Santé",
	CategorieCosmetique:            "Cosmétique",
	CategorieComplementAlimentaire: "Compléments",
	CategorieElectronique:          "Électronique",
	CategorieElectromenager:        "Électroménager",
	CategorieAgroalimentaire:       "Agroalimentaire",
	CategorieUsageQuotidien:        "Usage quotidien",
	CategorieTextile:               "Textile",
}

// Categories returns every category in display order.
func Categories() []Categorie {
	return []Categorie{
		CategorieSoinSante,
		CategorieCosmetique,
		CategorieComplementAlimentaire,
		CategorieElectronique,
		CategorieElectromenager,
		CategorieAgroalimentaire,
		CategorieUsageQuotidien,
		CategorieTextile,
	}
}

// Valid reports whether c is one of the known categories.
func (c Categorie) Valid() bool {
	_, ok := categorieLabels[c]
	return ok
}

// Label returns the French display label, or the raw value for unknown
// categories so nothing the backend sends is hidden.
func (c Categorie) Label() string {
	if l, ok := categorieLabels[c]; ok {
		return l
	}
	return string(c)
}

// CategorieOption is a select option for category dropdowns.
type CategorieOption struct {
	Value    string
	Label    string
	Selected bool
}

// CategorieOptions builds dropdown options with selected pre-selected.
func CategorieOptions(selected Categorie) []CategorieOption {
	cats := Categories()
	out := make([]CategorieOption, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategorieOption{
			Value:    string(c),
			Label:    c.Label(),
			Selected: c == selected,
		})
	}
	return out
}
