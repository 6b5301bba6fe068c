// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the number of rows shown in paged lists and requested from
// the backend as `limit`.
const PageSize = 10

// SelectLimit is how many records are fetched to fill a select control.
const SelectLimit = 100

// window is how many numbered links are shown on each side of the current page.
const window = 2

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PageLink is one numbered pager entry. Ellipsis entries have no URL.
type PageLink struct {
	Number   int
	URL      string
	Active   bool
	Ellipsis bool
}

// Pager is the view model for a list's pager control.
type Pager struct {
	Show    bool // false when everything fits on one page
	Current int
	Pages   int
	Total   int
	Start   int // 1-based index of the first row shown (0 if none)
	End     int // 1-based index of the last row shown (0 if none)
	PrevURL string
	NextURL string
	Links   []PageLink
}

// NewPager builds a pager from the backend's pagination envelope. base is the
// list path; extra query parameters in base are preserved. shown is how many
// rows the current page actually holds.
func NewPager(p models.Pagination, base string, shown int) Pager {
	p = p.Normalize(PageSize)
	pages := p.Pages()
	if pages > 0 && p.Current > pages {
		p.Current = pages
	}

	pg := Pager{
		Show:    p.Total > PageSize,
		Current: p.Current,
		Pages:   pages,
		Total:   p.Total,
	}
	if shown > 0 {
		pg.Start = (p.Current-1)*p.PageSize + 1
		pg.End = pg.Start + shown - 1
	}
	if !pg.Show {
		return pg
	}

	if p.Current > 1 {
		pg.PrevURL = PageURL(base, p.Current-1)
	}
	if p.Current < pages {
		pg.NextURL = PageURL(base, p.Current+1)
	}

	lastAdded := 0
	for n := 1; n <= pages; n++ {
		edge := n == 1 || n == pages
		near := n >= p.Current-window && n <= p.Current+window
		if !edge && !near {
			continue
		}
		if lastAdded > 0 && n > lastAdded+1 {
			pg.Links = append(pg.Links, PageLink{Ellipsis: true})
		}
		pg.Links = append(pg.Links, PageLink{
			Number: n,
			URL:    PageURL(base, n),
			Active: n == p.Current,
		})
		lastAdded = n
	}
	return pg
}

// PageURL returns base with its page parameter set to n.
func PageURL(base string, n int) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	if n <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
