package uploads_test

import (
	"io"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/longrichadmin/internal/app/system/uploads"
	"github.com/dalemusser/longrichadmin/internal/testutil"
)

func TestParse_Multipart(t *testing.T) {
	req := testutil.NewMultipartRequest(t, "POST", "/admin/dashboard/produits",
		map[string]string{"nom": "Dentifrice"},
		map[string]string{"photo": "dentifrice.jpg"})

	if err := uploads.Parse(httptest.NewRecorder(), req, uploads.MaxRequestBytes); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := req.PostFormValue("nom"); got != "Dentifrice" {
		t.Errorf("nom = %q", got)
	}

	var set uploads.Set
	defer set.Close()

	photo, err := set.File(req, "photo")
	if err != nil {
		t.Fatalf("File(photo): %v", err)
	}
	if photo == nil || photo.Filename != "dentifrice.jpg" {
		t.Fatalf("unexpected photo: %+v", photo)
	}
	body, _ := io.ReadAll(photo.Body)
	if string(body) != "test-bytes" {
		t.Errorf("photo body = %q", body)
	}

	video, err := set.File(req, "videoDemoFile")
	if err != nil || video != nil {
		t.Errorf("missing video: got %+v, %v; want nil, nil", video, err)
	}
}

func TestParse_URLEncoded(t *testing.T) {
	req := testutil.NewFormRequest("POST", "/admin/dashboard/produits/p1/delete", url.Values{"confirm": {"yes"}})

	if err := uploads.Parse(httptest.NewRecorder(), req, uploads.MaxRequestBytes); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := req.PostFormValue("confirm"); got != "yes" {
		t.Errorf("confirm = %q", got)
	}

	var set uploads.Set
	if f, err := set.File(req, "photo"); f != nil || err != nil {
		t.Errorf("urlencoded body has no files: got %+v, %v", f, err)
	}
}
