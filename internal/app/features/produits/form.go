// internal/app/features/produits/form.go
package produits

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/longrichadmin/internal/app/system/inputval"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
)

const stashKey = "produit"

// formFields are the text inputs echoed back after a rejected submission.
var formFields = []string{
	"nom", "categorie", "pv", "prixClient", "prixPartenaire",
	"promoActive", "prixPromo", "consignePromo", "description", "modeEmploi",
}

// produitForm is the produit form as typed. Amounts stay strings here and
// are parsed separately so each gets its own message.
type produitForm struct {
	Nom            string `validate:"required" label:"Nom" msg:"required=Nom requis"`
	Categorie      string `validate:"required,categorie" label:"Catégorie" msg:"required=Catégorie requise;categorie=Catégorie inconnue"`
	PV             string
	PrixClient     string
	PrixPartenaire string
	PromoActive    bool
	PrixPromo      string
	ConsignePromo  string
	Description    string `validate:"required,min=10" label:"Description" msg:"required=Description requise"`
	ModeEmploi     string
}

func readForm(vals url.Values) produitForm {
	get := func(k string) string { return strings.TrimSpace(vals.Get(k)) }
	promo, _ := strconv.ParseBool(get("promoActive"))
	return produitForm{
		Nom:            get("nom"),
		Categorie:      get("categorie"),
		PV:             get("pv"),
		PrixClient:     get("prixClient"),
		PrixPartenaire: get("prixPartenaire"),
		PromoActive:    promo,
		PrixPromo:      get("prixPromo"),
		ConsignePromo:  get("consignePromo"),
		Description:    get("description"),
		ModeEmploi:     get("modeEmploi"),
	}
}

// ParseInput checks a submitted produit form and converts it to the
// backend payload. The error message is ready to show to the admin.
//
// pv and prixClient are required; prixPartenaire defaults to 0; prixPromo,
// consignePromo and modeEmploi are left out when blank.
func ParseInput(vals url.Values) (models.ProduitInput, error) {
	f := readForm(vals)

	if res := inputval.Validate(f); res.HasErrors() {
		return models.ProduitInput{}, errors.New(res.First())
	}

	pv, err := inputval.ParseAmount(f.PV)
	if err != nil {
		return models.ProduitInput{}, amountError("Prix Vente (PV)", err)
	}
	prixClient, err := inputval.ParseAmount(f.PrixClient)
	if err != nil {
		return models.ProduitInput{}, amountError("Prix Client", err)
	}
	prixPartenaire, err := inputval.AmountOrZero(f.PrixPartenaire)
	if err != nil {
		return models.ProduitInput{}, amountError("Prix Partenaire", err)
	}
	prixPromo, err := inputval.ParseOptionalAmount(f.PrixPromo)
	if err != nil {
		return models.ProduitInput{}, amountError("Prix promo", err)
	}

	return models.ProduitInput{
		Nom:            f.Nom,
		Categorie:      models.Categorie(f.Categorie),
		PV:             pv,
		PrixClient:     prixClient,
		PrixPartenaire: prixPartenaire,
		PrixPromo:      prixPromo,
		PromoActive:    f.PromoActive,
		ConsignePromo:  optional(f.ConsignePromo),
		Description:    f.Description,
		ModeEmploi:     optional(f.ModeEmploi),
	}, nil
}

// valuesFromProduit pre-fills the edit form with a stored record.
func valuesFromProduit(p models.Produit) url.Values {
	v := url.Values{}
	v.Set("nom", p.Nom)
	v.Set("categorie", string(p.Categorie))
	v.Set("pv", p.PV.String())
	v.Set("prixClient", p.PrixClient.String())
	v.Set("prixPartenaire", p.PrixPartenaire.String())
	v.Set("promoActive", strconv.FormatBool(p.PromoActive))
	if p.PrixPromo.Valid {
		v.Set("prixPromo", p.PrixPromo.Decimal.String())
	}
	if p.ConsignePromo != nil {
		v.Set("consignePromo", *p.ConsignePromo)
	}
	v.Set("description", p.Description)
	if p.ModeEmploi != nil {
		v.Set("modeEmploi", *p.ModeEmploi)
	}
	return v
}

func amountError(label string, err error) error {
	return errors.New(label + " : " + err.Error())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// formVM is what the produit dialog renders.
type formVM struct {
	Title          string
	Submit         string
	Action         string
	CancelURL      string
	Nom            string
	Categories     []models.CategorieOption
	PV             string
	PrixClient     string
	PrixPartenaire string
	PromoActive    bool
	PrixPromo      string
	ConsignePromo  string
	Description    string
	ModeEmploi     string
	PhotoURL       string
	VideoURL       string
}

func newFormVM(vals url.Values) formVM {
	f := readForm(vals)
	return formVM{
		Nom:            f.Nom,
		Categories:     models.CategorieOptions(models.Categorie(f.Categorie)),
		PV:             f.PV,
		PrixClient:     f.PrixClient,
		PrixPartenaire: f.PrixPartenaire,
		PromoActive:    f.PromoActive,
		PrixPromo:      f.PrixPromo,
		ConsignePromo:  f.ConsignePromo,
		Description:    f.Description,
		ModeEmploi:     f.ModeEmploi,
	}
}
