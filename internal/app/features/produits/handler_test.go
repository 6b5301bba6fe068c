package produits_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/longrichadmin/internal/app/features/errors"
	"github.com/dalemusser/longrichadmin/internal/app/features/produits"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	"github.com/dalemusser/longrichadmin/internal/app/store/superadmin"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/formutil"
	"github.com/dalemusser/longrichadmin/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*produits.Handler, *testutil.Backend, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()
	backend := testutil.NewBackend(t)
	api := apiclient.New(backend.URL, 5*time.Second, logger)

	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	store := produitstore.New(api)
	shell := dashboard.NewShellLoader(superadmin.New(api, ""), store, logger)
	return produits.NewHandler(store, shell, sm, uierrors.NewErrorLogger(logger), logger), backend, sm
}

func validFields() map[string]string {
	return map[string]string{
		"nom":         "Dentifrice Herbal",
		"categorie":   "cosmetique",
		"pv":          "12",
		"prixClient":  "15 000",
		"description": "Dentifrice aux plantes médicinales",
		"promoActive": "false",
	}
}

func nextFlashes(sm *auth.SessionManager, rec *httptest.ResponseRecorder) auth.Flashes {
	return sm.PopFlashes(httptest.NewRecorder(), testutil.CarryCookies(rec, httptest.NewRequest("GET", produits.BasePath, nil)))
}

func multipartPost(t *testing.T, target, id string, fields, files map[string]string) *http.Request {
	t.Helper()
	req := testutil.WithSession(testutil.NewMultipartRequest(t, "POST", target, fields, files))
	if id != "" {
		req = testutil.WithChiURLParam(req, "id", id)
	}
	return req
}

func formPost(target, id string, form url.Values) *http.Request {
	req := testutil.WithSession(testutil.NewFormRequest("POST", target, form))
	return testutil.WithChiURLParam(req, "id", id)
}

func TestHandleCreate_SendsFieldsWithoutMedia(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("POST", "/super-admin/produits", http.StatusCreated, map[string]any{"id": "p9"})

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, multipartPost(t, produits.BasePath, "", validFields(), nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != produits.BasePath {
		t.Errorf("Location: got %q, want %q", loc, produits.BasePath)
	}

	rr, ok := backend.Last("POST", "/super-admin/produits")
	if !ok {
		t.Fatal("expected a create call")
	}
	if rr.Header.Get("Authorization") != "Bearer "+testutil.TestToken {
		t.Errorf("Authorization: got %q", rr.Header.Get("Authorization"))
	}
	want := map[string]string{
		"nom":            "Dentifrice Herbal",
		"categorie":      "cosmetique",
		"pv":             "12",
		"prixClient":     "15000",
		"prixPartenaire": "0",
		"promoActive":    "false",
	}
	for k, v := range want {
		if got := rr.Fields[k]; len(got) != 1 || got[0] != v {
			t.Errorf("field %s: got %v, want %q", k, got, v)
		}
	}
	for _, k := range []string{"prixPromo", "consignePromo", "modeEmploi"} {
		if _, present := rr.Fields[k]; present {
			t.Errorf("blank optional field %s should not be sent", k)
		}
	}
	if len(rr.Files) != 0 {
		t.Errorf("no media chosen, got files %v", rr.Files)
	}

	if f := nextFlashes(sm, rec); len(f.Success) != 1 || f.Success[0] != produits.MsgCreated {
		t.Errorf("expected %q, got %+v", produits.MsgCreated, f)
	}
}

func TestHandleCreate_ValidationRejectsWithoutBackendCall(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"missing nom", "nom", "", "Nom requis"},
		{"unknown categorie", "categorie", "bijoux", "Catégorie inconnue"},
		{"missing pv", "pv", "", "Prix Vente (PV) : Champ obligatoire"},
		{"negative prix client", "prixClient", "-5", "Prix Client : Doit être un nombre positif"},
		{"bad partner price", "prixPartenaire", "abc", "Prix Partenaire : Doit être un nombre positif"},
		{"short description", "description", "court", "Description : minimum 10 caractères"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, backend, sm := newHandler(t)
			fields := validFields()
			fields[tc.field] = tc.value

			rec := httptest.NewRecorder()
			h.HandleCreate(rec, multipartPost(t, produits.BasePath, "", fields, nil))

			if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?modal=new" {
				t.Errorf("Location: got %q", loc)
			}
			if n := len(backend.Requests()); n != 0 {
				t.Errorf("expected no backend call, got %d", n)
			}
			if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != tc.want {
				t.Errorf("expected %q, got %+v", tc.want, f)
			}
		})
	}
}

func TestHandleCreate_EchoesTypedValues(t *testing.T) {
	h, _, sm := newHandler(t)
	fields := validFields()
	fields["pv"] = ""

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, multipartPost(t, produits.BasePath, "", fields, nil))

	next := testutil.CarryCookies(rec, httptest.NewRequest("GET", "/admin/dashboard/produits?modal=new", nil))
	echo := formutil.Recall(httptest.NewRecorder(), next, sm, "produit")
	if echo.Get("nom") != "Dentifrice Herbal" || echo.Get("prixClient") != "15 000" {
		t.Errorf("unexpected echo: %v", echo)
	}
}

func TestHandleCreate_BackendMessageIsShown(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("POST", "/super-admin/produits", http.StatusBadRequest, map[string]string{"message": "Nom déjà utilisé"})

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, multipartPost(t, produits.BasePath, "", validFields(), nil))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?modal=new" {
		t.Errorf("Location: got %q", loc)
	}
	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != "Nom déjà utilisé" {
		t.Errorf("expected backend message, got %+v", f)
	}
}

func TestHandleCreate_BackendMessageSurvivesFullCookie(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("POST", "/super-admin/produits", http.StatusBadRequest, map[string]string{"message": "Nom déjà utilisé"})

	signIn := httptest.NewRecorder()
	if err := sm.SignIn(signIn, httptest.NewRequest("POST", "/admin/login", nil), strings.Repeat("t", 600)); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	fields := validFields()
	fields["description"] = strings.Repeat("é", 300)
	fields["modeEmploi"] = strings.Repeat("é", 300)
	fields["consignePromo"] = strings.Repeat("c", 450)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.CarryCookies(signIn, multipartPost(t, produits.BasePath, "", fields, nil)))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?modal=new" {
		t.Errorf("Location: got %q", loc)
	}
	next := testutil.CarryCookies(rec, httptest.NewRequest("GET", "/admin/dashboard/produits?modal=new", nil))
	echo := formutil.Recall(httptest.NewRecorder(), next, sm, "produit")
	if echo.Get("nom") != "Dentifrice Herbal" || echo.Get("pv") != "12" {
		t.Errorf("short fields should still be echoed, got %v", echo)
	}
	if echo.Get("description") != "" {
		t.Errorf("long fields should be dropped, got %d bytes", len(echo.Get("description")))
	}
	if f := sm.PopFlashes(httptest.NewRecorder(), next); len(f.Error) != 1 || f.Error[0] != "Nom déjà utilisé" {
		t.Errorf("expected backend message, got %+v", f)
	}
}

func TestHandleCreate_UnauthorizedExpiresSession(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("POST", "/super-admin/produits", http.StatusUnauthorized, map[string]string{"message": "Token invalide"})

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, multipartPost(t, produits.BasePath, "", validFields(), nil))

	if loc := rec.Header().Get("Location"); loc != auth.LoginPath {
		t.Errorf("Location: got %q, want %q", loc, auth.LoginPath)
	}
	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != auth.MsgSessionExpired {
		t.Errorf("expected %q, got %+v", auth.MsgSessionExpired, f)
	}
}

func TestHandleEdit_SendsOnlyNewMedia(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("PUT", "/super-admin/produits/p1", http.StatusOK, map[string]any{"id": "p1"})

	fields := validFields()
	fields["page"] = "2"
	fields["prixPromo"] = "9 500"
	rec := httptest.NewRecorder()
	h.HandleEdit(rec, multipartPost(t, "/admin/dashboard/produits/p1/edit", "p1", fields,
		map[string]string{"photo": "nouvelle.jpg"}))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?page=2" {
		t.Errorf("Location: got %q", loc)
	}

	rr, ok := backend.Last("PUT", "/super-admin/produits/p1")
	if !ok {
		t.Fatal("expected an update call")
	}
	if rr.Files[produitstore.PhotoField] != "nouvelle.jpg" {
		t.Errorf("photo part: got %v", rr.Files)
	}
	if _, sent := rr.Files[produitstore.VideoField]; sent {
		t.Error("video was not replaced and must not be sent")
	}
	if got := rr.Fields["prixPromo"]; len(got) != 1 || got[0] != "9500" {
		t.Errorf("prixPromo: got %v", got)
	}

	if f := nextFlashes(sm, rec); len(f.Success) != 1 || f.Success[0] != produits.MsgUpdated {
		t.Errorf("expected %q, got %+v", produits.MsgUpdated, f)
	}
}

func TestHandleEdit_FailureReopensEditDialog(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("PUT", "/super-admin/produits/p1", http.StatusInternalServerError, nil)

	rec := httptest.NewRecorder()
	h.HandleEdit(rec, multipartPost(t, "/admin/dashboard/produits/p1/edit", "p1", validFields(), nil))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?id=p1&modal=edit" {
		t.Errorf("Location: got %q", loc)
	}
	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != produits.MsgFailed {
		t.Errorf("expected %q, got %+v", produits.MsgFailed, f)
	}
}

func TestHandleDelete_RequiresConfirm(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("DELETE", "/super-admin/produits/p1", http.StatusOK, map[string]string{"message": "ok"})

	rec := httptest.NewRecorder()
	h.HandleDelete(rec, formPost("/admin/dashboard/produits/p1/delete", "p1", url.Values{}))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != produits.BasePath {
		t.Errorf("expected redirect to list, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if n := backend.Count("DELETE", "/super-admin/produits/p1"); n != 0 {
		t.Errorf("delete without confirmation must not reach the backend, got %d calls", n)
	}
	if f := nextFlashes(sm, rec); len(f.Info) != 1 || f.Info[0] != produits.MsgDeleteUnconfirmed {
		t.Errorf("expected %q, got %+v", produits.MsgDeleteUnconfirmed, f)
	}
}

func TestListTemplate_DeleteFormStartsUnconfirmed(t *testing.T) {
	tpl, err := os.ReadFile("templates/produits_list.gohtml")
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if strings.Contains(string(tpl), `name="confirm" value="yes"`) {
		t.Error("delete form must not send confirm=yes before the prompt is accepted")
	}
	if !strings.Contains(string(tpl), `data-confirm=`) {
		t.Error("delete form should ask for confirmation")
	}
}

func TestHandleDelete(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantSuccess string
		wantError   string
	}{
		{"deleted", http.StatusOK, produits.MsgDeleted, ""},
		{"backend error", http.StatusInternalServerError, "", produits.MsgDeleteFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, backend, sm := newHandler(t)
			backend.Handle("DELETE", "/super-admin/produits/p1", tc.status, map[string]string{"message": "x"})

			rec := httptest.NewRecorder()
			h.HandleDelete(rec, formPost("/admin/dashboard/produits/p1/delete", "p1",
				url.Values{"confirm": {"yes"}, "page": {"3"}}))

			if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?page=3" {
				t.Errorf("Location: got %q", loc)
			}
			if n := backend.Count("DELETE", "/super-admin/produits/p1"); n != 1 {
				t.Errorf("expected one delete call, got %d", n)
			}
			f := nextFlashes(sm, rec)
			if tc.wantSuccess != "" && (len(f.Success) != 1 || f.Success[0] != tc.wantSuccess) {
				t.Errorf("expected %q, got %+v", tc.wantSuccess, f)
			}
			if tc.wantError != "" && (len(f.Error) != 1 || f.Error[0] != tc.wantError) {
				t.Errorf("expected %q, got %+v", tc.wantError, f)
			}
		})
	}
}

func TestHandleToggle(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("PATCH", "/super-admin/produits/p1/toggle", http.StatusOK, map[string]any{"isActive": false})

	rec := httptest.NewRecorder()
	h.HandleToggle(rec, formPost("/admin/dashboard/produits/p1/toggle", "p1", url.Values{"page": {"2"}}))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?page=2" {
		t.Errorf("Location: got %q", loc)
	}
	rr, ok := backend.Last("PATCH", "/super-admin/produits/p1/toggle")
	if !ok {
		t.Fatal("expected a toggle call")
	}
	if rr.JSON == nil {
		t.Error("toggle should send an empty JSON object")
	}
	if f := nextFlashes(sm, rec); len(f.Success) != 1 || f.Success[0] != produits.MsgToggled {
		t.Errorf("expected %q, got %+v", produits.MsgToggled, f)
	}
}

func TestHandleToggle_BackendMessage(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("PATCH", "/super-admin/produits/p1/toggle", http.StatusNotFound, map[string]string{"message": "Produit non trouvé"})

	rec := httptest.NewRecorder()
	h.HandleToggle(rec, formPost("/admin/dashboard/produits/p1/toggle", "p1", url.Values{}))

	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != "Produit non trouvé" {
		t.Errorf("expected backend message, got %+v", f)
	}
}

func TestServeList_UnauthorizedExpiresSession(t *testing.T) {
	h, backend, _ := newHandler(t)
	backend.Handle("GET", "/super-admin/produits", http.StatusUnauthorized, map[string]string{"message": "expired"})

	rec := httptest.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", produits.BasePath))

	if loc := rec.Header().Get("Location"); loc != auth.LoginPath {
		t.Errorf("Location: got %q, want %q", loc, auth.LoginPath)
	}
}

func TestServeList_EditUnknownProduitReturnsToList(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("GET", "/super-admin/produits", http.StatusOK, testutil.ProduitPage(3, 2, 13))
	// GET /super-admin/produits/zz is unscripted and answers 404

	rec := httptest.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/admin/dashboard/produits?modal=edit&id=zz&page=2"))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/produits?page=2" {
		t.Errorf("Location: got %q", loc)
	}
	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != produits.MsgNotFound {
		t.Errorf("expected %q, got %+v", produits.MsgNotFound, f)
	}
	rr, _ := backend.Last("GET", "/super-admin/produits")
	if rr.Query.Get("page") != "2" || rr.Query.Get("limit") != "10" {
		t.Errorf("list query: got %v", rr.Query)
	}
}

func TestServeDetail_UnknownProduitReturnsToList(t *testing.T) {
	h, _, sm := newHandler(t)

	rec := httptest.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/admin/dashboard/produits/zz"), "id", "zz")
	h.ServeDetail(rec, req)

	if loc := rec.Header().Get("Location"); loc != produits.BasePath {
		t.Errorf("Location: got %q", loc)
	}
	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != produits.MsgNotFound {
		t.Errorf("expected %q, got %+v", produits.MsgNotFound, f)
	}
}
