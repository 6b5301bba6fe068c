package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PackItem is one product line inside a pack santé.
type PackItem struct {
	Nom      string `json:"nom"`
	Quantite int    `json:"quantite"`
}

// Sante is a health pack: a health concern, the products that address it,
// usage instructions and an optional main product.
type Sante struct {
	ID                  string     `json:"id"`
	Categorie           Categorie  `json:"categorie"`
	Probleme            string     `json:"probleme"`
	PackProduits        []PackItem `json:"packProduits"`
	ConsigneUtilisation string     `json:"consigneUtilisation"`
	ProduitID           *string    `json:"produitId,omitempty"`
	MonProduit          *Produit   `json:"monProduit,omitempty"`
	VideoDemo           *string    `json:"videoDemo,omitempty"`
	IsActive            bool       `json:"isActive"`
}

// VideoURL returns the demo video URL or "".
func (s Sante) VideoURL() string { return deref(s.VideoDemo) }

// MainProduitID returns the referenced produit id or "".
func (s Sante) MainProduitID() string { return deref(s.ProduitID) }

// SanteInput is the payload submitted on create and update.
type SanteInput struct {
	Categorie           Categorie
	Probleme            string
	PackProduits        []PackItem
	ConsigneUtilisation string
	ProduitID           *string
}

// ErrPackProduits is wrapped by every ParsePackProduits failure.
var ErrPackProduits = errors.New("pack produits invalide")

// ParsePackProduits decodes the pack contents typed in the form and checks
// their structure: a non-empty JSON array of {nom, quantite} where every
// nom is non-blank and every quantite is at least 1.
func ParsePackProduits(text string) ([]PackItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w : champ obligatoire", ErrPackProduits)
	}

	var items []PackItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w : JSON attendu, ex. [{\"nom\": \"Produit 1\", \"quantite\": 2}]", ErrPackProduits)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w : au moins un produit", ErrPackProduits)
	}

	for i := range items {
		items[i].Nom = strings.TrimSpace(items[i].Nom)
		if items[i].Nom == "" {
			return nil, fmt.Errorf("%w : le produit %d n'a pas de nom", ErrPackProduits, i+1)
		}
		if items[i].Quantite < 1 {
			return nil, fmt.Errorf("%w : quantité invalide pour %q", ErrPackProduits, items[i].Nom)
		}
	}
	return items, nil
}

// EncodePackProduits serializes pack contents the way the backend expects
// them in a multipart text field.
func EncodePackProduits(items []PackItem) string {
	if items == nil {
		items = []PackItem{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// IndentPackProduits renders pack contents for editing in a textarea.
func IndentPackProduits(items []PackItem) string {
	if len(items) == 0 {
		return ""
	}
	b, _ := json.MarshalIndent(items, "", "  ")
	return string(b)
}
