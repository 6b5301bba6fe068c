package sante_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/longrichadmin/internal/app/features/errors"
	"github.com/dalemusser/longrichadmin/internal/app/features/sante"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	santestore "github.com/dalemusser/longrichadmin/internal/app/store/sante"
	"github.com/dalemusser/longrichadmin/internal/app/store/superadmin"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*sante.Handler, *testutil.Backend, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()
	backend := testutil.NewBackend(t)
	api := apiclient.New(backend.URL, 5*time.Second, logger)

	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	produitStore := produitstore.New(api)
	shell := dashboard.NewShellLoader(superadmin.New(api, ""), produitStore, logger)
	h := sante.NewHandler(santestore.New(api), produitStore, shell, sm, uierrors.NewErrorLogger(logger), logger)
	return h, backend, sm
}

func validFields() map[string]string {
	return map[string]string{
		"categorie":           "soin_sante",
		"probleme":            "Douleurs articulaires chroniques",
		"packProduits":        `[{"nom": "Calcium", "quantite": 2}, {"nom": "Glucosamine", "quantite": 1}]`,
		"consigneUtilisation": "Deux gélules matin et soir",
	}
}

func nextFlashes(sm *auth.SessionManager, rec *httptest.ResponseRecorder) auth.Flashes {
	return sm.PopFlashes(httptest.NewRecorder(), testutil.CarryCookies(rec, httptest.NewRequest("GET", sante.BasePath, nil)))
}

func multipartPost(t *testing.T, target, id string, fields, files map[string]string) *http.Request {
	t.Helper()
	req := testutil.WithSession(testutil.NewMultipartRequest(t, "POST", target, fields, files))
	if id != "" {
		req = testutil.WithChiURLParam(req, "id", id)
	}
	return req
}

func TestHandleCreate_SendsPack(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("POST", "/super-admin/sante", http.StatusCreated, map[string]any{"id": "s9"})

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, multipartPost(t, sante.BasePath, "", validFields(), nil))

	if loc := rec.Header().Get("Location"); loc != sante.BasePath {
		t.Errorf("Location: got %q, want %q", loc, sante.BasePath)
	}

	rr, ok := backend.Last("POST", "/super-admin/sante")
	if !ok {
		t.Fatal("expected a create call")
	}
	want := map[string]string{
		"categorie":           "soin_sante",
		"probleme":            "Douleurs articulaires chroniques",
		"packProduits":        `[{"nom":"Calcium","quantite":2},{"nom":"Glucosamine","quantite":1}]`,
		"consigneUtilisation": "Deux gélules matin et soir",
	}
	for k, v := range want {
		if got := rr.Fields[k]; len(got) != 1 || got[0] != v {
			t.Errorf("field %s: got %v, want %q", k, got, v)
		}
	}
	if _, sent := rr.Fields["produitId"]; sent {
		t.Error("blank produitId must not be sent")
	}
	if len(rr.Files) != 0 {
		t.Errorf("no video chosen, got files %v", rr.Files)
	}

	if f := nextFlashes(sm, rec); len(f.Success) != 1 || f.Success[0] != sante.MsgCreated {
		t.Errorf("expected %q, got %+v", sante.MsgCreated, f)
	}
}

func TestHandleCreate_WithMainProduitAndVideo(t *testing.T) {
	h, backend, _ := newHandler(t)
	backend.Handle("POST", "/super-admin/sante", http.StatusCreated, map[string]any{"id": "s9"})

	fields := validFields()
	fields["produitId"] = "p7"
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, multipartPost(t, sante.BasePath, "", fields, map[string]string{"videoDemoFile": "demo.mp4"}))

	rr, _ := backend.Last("POST", "/super-admin/sante")
	if got := rr.Fields["produitId"]; len(got) != 1 || got[0] != "p7" {
		t.Errorf("produitId: got %v", got)
	}
	if rr.Files[santestore.VideoField] != "demo.mp4" {
		t.Errorf("video part: got %v", rr.Files)
	}
}

func TestHandleCreate_ValidationRejectsWithoutBackendCall(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"missing categorie", "categorie", "", "Catégorie requise"},
		{"short probleme", "probleme", "Fatigue", "Problème santé : minimum 10 caractères"},
		{"missing consigne", "consigneUtilisation", " ", "Consigne utilisation requise"},
		{"pack not json", "packProduits", "Calcium x2", "pack produits invalide : JSON attendu, ex. [{\"nom\": \"Produit 1\", \"quantite\": 2}]"},
		{"empty pack", "packProduits", "[]", "pack produits invalide : au moins un produit"},
		{"bad quantity", "packProduits", `[{"nom": "Calcium", "quantite": 0}]`, `pack produits invalide : quantité invalide pour "Calcium"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, backend, sm := newHandler(t)
			fields := validFields()
			fields[tc.field] = tc.value

			rec := httptest.NewRecorder()
			h.HandleCreate(rec, multipartPost(t, sante.BasePath, "", fields, nil))

			if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/sante?modal=new" {
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

func TestHandleEdit_KeepsVideoWhenNoneChosen(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("PUT", "/super-admin/sante/s1", http.StatusOK, map[string]any{"id": "s1"})

	fields := validFields()
	fields["page"] = "2"
	rec := httptest.NewRecorder()
	h.HandleEdit(rec, multipartPost(t, "/admin/dashboard/sante/s1/edit", "s1", fields, nil))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/sante?page=2" {
		t.Errorf("Location: got %q", loc)
	}
	rr, ok := backend.Last("PUT", "/super-admin/sante/s1")
	if !ok {
		t.Fatal("expected an update call")
	}
	if len(rr.Files) != 0 {
		t.Errorf("existing video must not be re-sent, got %v", rr.Files)
	}
	if f := nextFlashes(sm, rec); len(f.Success) != 1 || f.Success[0] != sante.MsgUpdated {
		t.Errorf("expected %q, got %+v", sante.MsgUpdated, f)
	}
}

func TestHandleEdit_BackendMessage(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("PUT", "/super-admin/sante/s1", http.StatusBadRequest, map[string]string{"message": "Produit principal inconnu"})

	rec := httptest.NewRecorder()
	h.HandleEdit(rec, multipartPost(t, "/admin/dashboard/sante/s1/edit", "s1", validFields(), nil))

	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard/sante?id=s1&modal=edit" {
		t.Errorf("Location: got %q", loc)
	}
	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != "Produit principal inconnu" {
		t.Errorf("expected backend message, got %+v", f)
	}
}

func TestHandleEdit_UnauthorizedExpiresSession(t *testing.T) {
	h, backend, _ := newHandler(t)
	backend.Handle("PUT", "/super-admin/sante/s1", http.StatusUnauthorized, nil)

	rec := httptest.NewRecorder()
	h.HandleEdit(rec, multipartPost(t, "/admin/dashboard/sante/s1/edit", "s1", validFields(), nil))

	if loc := rec.Header().Get("Location"); loc != auth.LoginPath {
		t.Errorf("Location: got %q, want %q", loc, auth.LoginPath)
	}
}

func TestHandleDelete(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("DELETE", "/super-admin/sante/s1", http.StatusOK, nil)

	unconfirmed := testutil.WithChiURLParam(testutil.WithSession(
		testutil.NewFormRequest("POST", "/admin/dashboard/sante/s1/delete", url.Values{})), "id", "s1")
	refused := httptest.NewRecorder()
	h.HandleDelete(refused, unconfirmed)
	if n := backend.Count("DELETE", "/super-admin/sante/s1"); n != 0 {
		t.Fatalf("delete without confirmation must not reach the backend, got %d calls", n)
	}
	if f := nextFlashes(sm, refused); len(f.Info) != 1 || f.Info[0] != sante.MsgDeleteUnconfirmed {
		t.Errorf("expected %q, got %+v", sante.MsgDeleteUnconfirmed, f)
	}

	rec := httptest.NewRecorder()
	confirmed := testutil.WithChiURLParam(testutil.WithSession(
		testutil.NewFormRequest("POST", "/admin/dashboard/sante/s1/delete", url.Values{"confirm": {"yes"}})), "id", "s1")
	h.HandleDelete(rec, confirmed)

	if n := backend.Count("DELETE", "/super-admin/sante/s1"); n != 1 {
		t.Errorf("expected one delete call, got %d", n)
	}
	if f := nextFlashes(sm, rec); len(f.Success) != 1 || f.Success[0] != sante.MsgDeleted {
		t.Errorf("expected %q, got %+v", sante.MsgDeleted, f)
	}
}

func TestHandleToggle(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("PATCH", "/super-admin/sante/s1/toggle", http.StatusOK, map[string]any{"isActive": true})

	rec := httptest.NewRecorder()
	req := testutil.WithChiURLParam(testutil.WithSession(
		testutil.NewFormRequest("POST", "/admin/dashboard/sante/s1/toggle", url.Values{})), "id", "s1")
	h.HandleToggle(rec, req)

	if backend.Count("PATCH", "/super-admin/sante/s1/toggle") != 1 {
		t.Error("expected one toggle call")
	}
	if loc := rec.Header().Get("Location"); loc != sante.BasePath {
		t.Errorf("Location: got %q", loc)
	}
	if f := nextFlashes(sm, rec); len(f.Success) != 1 || f.Success[0] != sante.MsgToggled {
		t.Errorf("expected %q, got %+v", sante.MsgToggled, f)
	}
}

func TestServeList_EditUnknownPackReturnsToList(t *testing.T) {
	h, backend, sm := newHandler(t)
	backend.Handle("GET", "/super-admin/sante", http.StatusOK, testutil.SantePage(2, 1, 2))

	rec := httptest.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/admin/dashboard/sante?modal=edit&id=zz"))

	if loc := rec.Header().Get("Location"); loc != sante.BasePath {
		t.Errorf("Location: got %q", loc)
	}
	if f := nextFlashes(sm, rec); len(f.Error) != 1 || f.Error[0] != sante.MsgNotFound {
		t.Errorf("expected %q, got %+v", sante.MsgNotFound, f)
	}
	if backend.Count("GET", "/super-admin/produits") != 0 {
		t.Error("produits select should not be loaded when the dialog cannot open")
	}
}

func TestServeList_UnauthorizedExpiresSession(t *testing.T) {
	h, backend, _ := newHandler(t)
	backend.Handle("GET", "/super-admin/sante", http.StatusUnauthorized, nil)

	rec := httptest.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", sante.BasePath))

	if loc := rec.Header().Get("Location"); loc != auth.LoginPath {
		t.Errorf("Location: got %q, want %q", loc, auth.LoginPath)
	}
}
