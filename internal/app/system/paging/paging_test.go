package paging

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/longrichadmin/internal/domain/models"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"/admin/dashboard/produits", 1},
		{"/admin/dashboard/produits?page=3", 3},
		{"/admin/dashboard/produits?page=0", 1},
		{"/admin/dashboard/produits?page=-2", 1},
		{"/admin/dashboard/produits?page=abc", 1},
	}
	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.target, nil)
			if got := ParsePage(r); got != tc.want {
				t.Errorf("ParsePage = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNewPager_HiddenUpToOnePage(t *testing.T) {
	for _, total := range []int{0, 1, 10} {
		pg := NewPager(models.Pagination{Current: 1, Total: total}, "/x", total)
		if pg.Show {
			t.Errorf("total=%d: pager should be hidden", total)
		}
		if pg.Total != total {
			t.Errorf("total=%d: Total = %d", total, pg.Total)
		}
	}
}

func TestNewPager_ReflectsBackend(t *testing.T) {
	pg := NewPager(models.Pagination{Current: 2, Total: 31}, "/admin/dashboard/produits", 10)

	if !pg.Show {
		t.Fatal("pager should be shown for 31 rows")
	}
	if pg.Current != 2 || pg.Total != 31 || pg.Pages != 4 {
		t.Errorf("unexpected pager: %+v", pg)
	}
	if pg.Start != 11 || pg.End != 20 {
		t.Errorf("range = %d-%d, want 11-20", pg.Start, pg.End)
	}
	if pg.PrevURL != "/admin/dashboard/produits" {
		t.Errorf("PrevURL = %q", pg.PrevURL)
	}
	if pg.NextURL != "/admin/dashboard/produits?page=3" {
		t.Errorf("NextURL = %q", pg.NextURL)
	}
	if len(pg.Links) != 4 || !pg.Links[1].Active {
		t.Errorf("unexpected links: %+v", pg.Links)
	}
}

func TestNewPager_Ellipsis(t *testing.T) {
	pg := NewPager(models.Pagination{Current: 10, Total: 200}, "/x", 10)

	// 1 … 8 9 10 11 12 … 20
	var numbers []int
	ellipses := 0
	for _, l := range pg.Links {
		if l.Ellipsis {
			ellipses++
			continue
		}
		numbers = append(numbers, l.Number)
	}
	want := []int{1, 8, 9, 10, 11, 12, 20}
	if len(numbers) != len(want) {
		t.Fatalf("numbers = %v, want %v", numbers, want)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("numbers = %v, want %v", numbers, want)
			break
		}
	}
	if ellipses != 2 {
		t.Errorf("ellipses = %d, want 2", ellipses)
	}
}

func TestNewPager_ClampsCurrent(t *testing.T) {
	pg := NewPager(models.Pagination{Current: 0, Total: 25}, "/x", 10)
	if pg.Current != 1 {
		t.Errorf("Current = %d, want 1", pg.Current)
	}
	pg = NewPager(models.Pagination{Current: 9, Total: 25}, "/x", 0)
	if pg.Current != 3 {
		t.Errorf("Current = %d, want clamped to 3", pg.Current)
	}
	if pg.NextURL != "" {
		t.Errorf("last page should have no next link, got %q", pg.NextURL)
	}
}

func TestPageURL_PreservesQuery(t *testing.T) {
	got := PageURL("/admin/dashboard/sante?modal=new", 2)
	if got != "/admin/dashboard/sante?modal=new&page=2" {
		t.Errorf("PageURL = %q", got)
	}
	if got := PageURL("/x?page=4", 1); got != "/x" {
		t.Errorf("PageURL page 1 = %q", got)
	}
}
