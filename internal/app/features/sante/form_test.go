package sante_test

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/dalemusser/longrichadmin/internal/app/features/sante"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
)

func TestParseInput(t *testing.T) {
	in, err := sante.ParseInput(url.Values{
		"categorie":           {"complement_alimentaire"},
		"probleme":            {"  Fatigue chronique et stress  "},
		"produitId":           {"p3"},
		"packProduits":        {`[{"nom": "Ginseng", "quantite": 1}, {"nom": "Spiruline", "quantite": 3}]`},
		"consigneUtilisation": {"Une cure de trois semaines"},
	})
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if in.Categorie != models.CategorieComplementAlimentaire {
		t.Errorf("Categorie: got %q", in.Categorie)
	}
	if in.Probleme != "Fatigue chronique et stress" {
		t.Errorf("Probleme not trimmed: %q", in.Probleme)
	}
	if in.ProduitID == nil || *in.ProduitID != "p3" {
		t.Errorf("ProduitID: got %v", in.ProduitID)
	}
	want := []models.PackItem{{Nom: "Ginseng", Quantite: 1}, {Nom: "Spiruline", Quantite: 3}}
	if !reflect.DeepEqual(in.PackProduits, want) {
		t.Errorf("PackProduits: got %+v, want %+v", in.PackProduits, want)
	}
}

func TestParseInput_NoMainProduit(t *testing.T) {
	in, err := sante.ParseInput(url.Values{
		"categorie":           {"soin_sante"},
		"probleme":            {"Problèmes de digestion"},
		"produitId":           {""},
		"packProduits":        {`[{"nom": "Aloe", "quantite": 1}]`},
		"consigneUtilisation": {"Le matin à jeun"},
	})
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if in.ProduitID != nil {
		t.Errorf("expected no main produit, got %q", *in.ProduitID)
	}
}

func TestParseInput_PackErrorsWrapSentinel(t *testing.T) {
	_, err := sante.ParseInput(url.Values{
		"categorie":           {"soin_sante"},
		"probleme":            {"Problèmes de digestion"},
		"packProduits":        {`[{"nom": "", "quantite": 1}]`},
		"consigneUtilisation": {"Le matin à jeun"},
	})
	if !errors.Is(err, models.ErrPackProduits) {
		t.Fatalf("expected ErrPackProduits, got %v", err)
	}
	if err.Error() != "pack produits invalide : le produit 1 n'a pas de nom" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestEditTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fatigue", `Modifier "Fatigue..."`},
		{"Douleurs articulaires chroniques du genou", `Modifier "Douleurs articulaires chroniqu..."`},
		{"Problème de santé très très éé", `Modifier "Problème de santé très très éé..."`},
	}
	for _, tc := range tests {
		if got := sante.EditTitle(tc.in); got != tc.want {
			t.Errorf("EditTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRows(t *testing.T) {
	photo := "https://cdn.example.com/calcium.jpg"
	video := "https://cdn.example.com/demo.mp4"
	items := []models.Sante{
		{
			ID:        "s1",
			Categorie: models.CategorieSoinSante,
			Probleme:  "Douleurs articulaires",
			PackProduits: []models.PackItem{
				{Nom: "Calcium", Quantite: 2},
				{Nom: "", Quantite: 1},
				{Nom: "Glucosamine", Quantite: 1},
				{Nom: "Omega 3", Quantite: 1},
				{Nom: "Vitamine D", Quantite: 1},
			},
			MonProduit: &models.Produit{ID: "p1", Nom: "Calcium", Photo: &photo},
			VideoDemo:  &video,
			IsActive:   true,
		},
		{ID: "s2", Categorie: models.CategorieCosmetique, Probleme: "Peau sèche", PackProduits: []models.PackItem{{Nom: "Crème", Quantite: 1}}},
	}

	rows := sante.Rows(items, 2)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}

	r := rows[0]
	if want := []string{"Calcium", "Produit 2", "Glucosamine"}; !reflect.DeepEqual(r.PackTags, want) {
		t.Errorf("PackTags: got %v, want %v", r.PackTags, want)
	}
	if r.PackMore != "+2" {
		t.Errorf("PackMore: got %q", r.PackMore)
	}
	if r.Categorie != "Santé" {
		t.Errorf("Categorie label: got %q", r.Categorie)
	}
	if r.MainNom != "Calcium" || r.MainPhotoURL != photo {
		t.Errorf("main produit: got %q %q", r.MainNom, r.MainPhotoURL)
	}
	if r.VideoURL != video || !r.Active {
		t.Errorf("video/active: got %q %v", r.VideoURL, r.Active)
	}
	if r.EditURL != "/admin/dashboard/sante?id=s1&modal=edit&page=2" {
		t.Errorf("EditURL: got %q", r.EditURL)
	}
	if r.ToggleAction != "/admin/dashboard/sante/s1/toggle" || r.DeleteAction != "/admin/dashboard/sante/s1/delete" {
		t.Errorf("actions: got %q %q", r.ToggleAction, r.DeleteAction)
	}

	if rows[1].PackMore != "" || rows[1].MainNom != "" {
		t.Errorf("second row: got more=%q main=%q", rows[1].PackMore, rows[1].MainNom)
	}
}

func TestProduitOptions(t *testing.T) {
	opts := sante.ProduitOptions([]models.Produit{{ID: "p1", Nom: "Calcium"}, {ID: "p2", Nom: "Aloe"}}, "p2")
	want := []sante.ProduitOption{{ID: "p1", Nom: "Calcium"}, {ID: "p2", Nom: "Aloe", Selected: true}}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("got %+v, want %+v", opts, want)
	}
}

func TestNewDetail(t *testing.T) {
	pid := "p 7"
	d := sante.NewDetail(models.Sante{
		ID:                  "s1",
		Categorie:           models.CategorieSoinSante,
		Probleme:            "Douleurs articulaires",
		PackProduits:        []models.PackItem{{Nom: "Calcium", Quantite: 2}},
		ConsigneUtilisation: `<p>Matin</p><script>alert(1)</script>`,
		ProduitID:           &pid,
	})
	if d.MainProduitURL != "/admin/dashboard/produits/p%207" {
		t.Errorf("MainProduitURL: got %q", d.MainProduitURL)
	}
	if got := string(d.ConsigneUtilisation); strings.Contains(got, "script") || !strings.Contains(got, "Matin") {
		t.Errorf("ConsigneUtilisation not sanitized: %q", got)
	}
	if len(d.Pack) != 1 || d.Pack[0].Quantite != 2 {
		t.Errorf("Pack: got %+v", d.Pack)
	}
}
