// internal/app/features/sante/form.go
package sante

import (
	"errors"
	"net/url"
	"strings"

	"github.com/dalemusser/longrichadmin/internal/app/system/inputval"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
)

const stashKey = "sante"

var formFields = []string{"categorie", "probleme", "produitId", "packProduits", "consigneUtilisation"}

type santeForm struct {
	Categorie           string `validate:"required,categorie" label:"Catégorie" msg:"required=Catégorie requise;categorie=Catégorie inconnue"`
	Probleme            string `validate:"required,min=10" label:"Problème santé" msg:"required=Problème santé requis"`
	ProduitID           string
	PackProduits        string
	ConsigneUtilisation string `validate:"required" label:"Consigne utilisation" msg:"required=Consigne utilisation requise"`
}

func readForm(vals url.Values) santeForm {
	get := func(k string) string { return strings.TrimSpace(vals.Get(k)) }
	return santeForm{
		Categorie:           get("categorie"),
		Probleme:            get("probleme"),
		ProduitID:           get("produitId"),
		PackProduits:        get("packProduits"),
		ConsigneUtilisation: get("consigneUtilisation"),
	}
}

// ParseInput checks a submitted pack form and converts it to the backend
// payload. packProduits must be a JSON array of {nom, quantite}; an empty
// produitId means no main produit.
func ParseInput(vals url.Values) (models.SanteInput, error) {
	f := readForm(vals)

	if res := inputval.Validate(f); res.HasErrors() {
		return models.SanteInput{}, errors.New(res.First())
	}

	items, err := models.ParsePackProduits(f.PackProduits)
	if err != nil {
		return models.SanteInput{}, err
	}

	in := models.SanteInput{
		Categorie:           models.Categorie(f.Categorie),
		Probleme:            f.Probleme,
		PackProduits:        items,
		ConsigneUtilisation: f.ConsigneUtilisation,
	}
	if f.ProduitID != "" {
		id := f.ProduitID
		in.ProduitID = &id
	}
	return in, nil
}

// valuesFromSante pre-fills the edit form; pack contents are indented for
// the textarea.
func valuesFromSante(s models.Sante) url.Values {
	v := url.Values{}
	v.Set("categorie", string(s.Categorie))
	v.Set("probleme", s.Probleme)
	v.Set("produitId", s.MainProduitID())
	v.Set("packProduits", models.IndentPackProduits(s.PackProduits))
	v.Set("consigneUtilisation", s.ConsigneUtilisation)
	return v
}

// ProduitOption is one entry of the "produit principal" select.
type ProduitOption struct {
	ID       string
	Nom      string
	Selected bool
}

// ProduitOptions lists produits for the select with selected pre-chosen.
func ProduitOptions(items []models.Produit, selected string) []ProduitOption {
	out := make([]ProduitOption, 0, len(items))
	for _, p := range items {
		out = append(out, ProduitOption{ID: p.ID, Nom: p.Nom, Selected: p.ID == selected})
	}
	return out
}

type formVM struct {
	Title               string
	Submit              string
	Action              string
	CancelURL           string
	Categories          []models.CategorieOption
	Probleme            string
	Produits            []ProduitOption
	ProduitsUnavailable bool
	PackProduits        string
	ConsigneUtilisation string
	VideoURL            string
}

func newFormVM(vals url.Values, produits []models.Produit) formVM {
	f := readForm(vals)
	return formVM{
		Categories:          models.CategorieOptions(models.Categorie(f.Categorie)),
		Probleme:            f.Probleme,
		Produits:            ProduitOptions(produits, f.ProduitID),
		PackProduits:        f.PackProduits,
		ConsigneUtilisation: f.ConsigneUtilisation,
	}
}
