package models

import "github.com/shopspring/decimal"

// Produit is a catalog product as the backend returns it.
type Produit struct {
	ID             string              `json:"id"`
	Nom            string              `json:"nom"`
	Categorie      Categorie           `json:"categorie"`
	PV             decimal.Decimal     `json:"pv"`
	PrixClient     decimal.Decimal     `json:"prixClient"`
	PrixPartenaire decimal.Decimal     `json:"prixPartenaire"`
	PrixPromo      decimal.NullDecimal `json:"prixPromo"`
	PromoActive    bool                `json:"promoActive"`
	ConsignePromo  *string             `json:"consignePromo,omitempty"`
	Description    string              `json:"description"`
	ModeEmploi     *string             `json:"modeEmploi,omitempty"`
	Photo          *string             `json:"photo,omitempty"`
	VideoDemo      *string             `json:"videoDemo,omitempty"`
	IsActive       bool                `json:"isActive"`
}

// PhotoURL returns the photo URL or "".
func (p Produit) PhotoURL() string { return deref(p.Photo) }

// VideoURL returns the demo video URL or "".
func (p Produit) VideoURL() string { return deref(p.VideoDemo) }

// ProduitInput is the payload submitted on create and update.
// Nil pointers are optional fields left empty and are not sent.
type ProduitInput struct {
	Nom            string
	Categorie      Categorie
	PV             decimal.Decimal
	PrixClient     decimal.Decimal
	PrixPartenaire decimal.Decimal
	PrixPromo      *decimal.Decimal
	PromoActive    bool
	ConsignePromo  *string
	Description    string
	ModeEmploi     *string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
