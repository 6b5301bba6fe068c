// Package formutil carries submitted form values across a
// post-redirect-get round trip.
//
// When a submission fails validation, the handler flashes the error, stashes
// what the user typed and redirects back to the form. The GET handler then
// recalls the values to pre-fill the inputs:
//
//	formutil.Stash(w, r, h.SessionMgr, "produit", r.PostForm, "nom", "pv")
//	http.Redirect(w, r, "/admin/dashboard/produits?modal=new", http.StatusSeeOther)
//
//	// later, in the GET handler:
//	echo := formutil.Recall(w, r, h.SessionMgr, "produit")
//	data.Nom = echo.Get("nom")
package formutil

import (
	"encoding/json"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
)

// maxValueRunes caps each echoed value; maxEncoded caps the whole stash.
// The cookie also carries the token and any flashes, so a stash under
// maxEncoded can still be refused; shortRunes picks the fields kept then.
const (
	maxValueRunes = 600
	maxEncoded    = 2000
	shortRunes    = 80
)

// Stash keeps the listed fields of form for the next request. Values are
// truncated. When the session cookie cannot hold them all, only the short
// fields are kept; failing that, nothing is.
func Stash(w http.ResponseWriter, r *http.Request, sm *auth.SessionManager, key string, form url.Values, fields ...string) {
	keep := make(map[string]string, len(fields))
	for _, f := range fields {
		if v := form.Get(f); v != "" {
			keep[f] = truncate(v, maxValueRunes)
		}
	}
	if stash(w, r, sm, key, keep) {
		return
	}

	short := make(map[string]string, len(keep))
	for f, v := range keep {
		if utf8.RuneCountInString(v) <= shortRunes {
			short[f] = v
		}
	}
	if len(short) < len(keep) {
		stash(w, r, sm, key, short)
	}
}

// stash reports whether vals were kept.
func stash(w http.ResponseWriter, r *http.Request, sm *auth.SessionManager, key string, vals map[string]string) bool {
	if len(vals) == 0 {
		return true
	}
	enc, err := json.Marshal(vals)
	if err != nil || len(enc) > maxEncoded {
		return false
	}
	return sm.Stash(w, r, key, string(enc)) == nil
}

// Recall returns the values kept by Stash, or an empty set.
func Recall(w http.ResponseWriter, r *http.Request, sm *auth.SessionManager, key string) url.Values {
	raw := sm.Take(w, r, key)
	if raw == "" {
		return url.Values{}
	}
	var kept map[string]string
	if err := json.Unmarshal([]byte(raw), &kept); err != nil {
		return url.Values{}
	}
	vals := make(url.Values, len(kept))
	for k, v := range kept {
		vals.Set(k, v)
	}
	return vals
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
