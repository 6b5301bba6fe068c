package testutil

import "fmt"

// ProduitJSON returns a backend-shaped produit record for scripting the
// fake backend. Overrides replace or add keys.
func ProduitJSON(id, nom string, overrides map[string]any) map[string]any {
	p := map[string]any{
		"id":             id,
		"nom":            nom,
		"categorie":      "soin_sante",
		"pv":             10,
		"prixClient":     15000,
		"prixPartenaire": 12000,
		"promoActive":    false,
		"description":    "Description de test suffisamment longue",
		"isActive":       true,
	}
	for k, v := range overrides {
		p[k] = v
	}
	return p
}

// SanteJSON returns a backend-shaped pack santé record.
func SanteJSON(id, probleme string, overrides map[string]any) map[string]any {
	s := map[string]any{
		"id":                  id,
		"categorie":           "soin_sante",
		"probleme":            probleme,
		"packProduits":        []map[string]any{{"nom": "Calcium", "quantite": 2}},
		"consigneUtilisation": "Deux fois par jour",
		"isActive":            true,
	}
	for k, v := range overrides {
		s[k] = v
	}
	return s
}

// ProduitPage returns a list envelope with n produits and the given total.
func ProduitPage(n, current, total int) map[string]any {
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, ProduitJSON(fmt.Sprintf("p%d", i+1), fmt.Sprintf("Produit %d", i+1), nil))
	}
	return map[string]any{
		"produits":   items,
		"pagination": map[string]int{"current": current, "total": total},
		"count":      total,
	}
}

// SantePage returns a list envelope with n packs and the given total.
func SantePage(n, current, total int) map[string]any {
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, SanteJSON(fmt.Sprintf("s%d", i+1), fmt.Sprintf("Problème de santé numéro %d", i+1), nil))
	}
	return map[string]any{
		"santes":     items,
		"pagination": map[string]int{"current": current, "total": total},
	}
}
