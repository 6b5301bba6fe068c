package models

import "github.com/shopspring/decimal"

// SuperAdmin is the profile of the signed-in console account.
type SuperAdmin struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
}

// Stats is the dashboard summary. Every counter is optional on the wire.
type Stats struct {
	Produits   int64           `json:"produits"`
	Boutiques  int64           `json:"boutiques"`
	Commandes  int64           `json:"commandes"`
	Livraisons int64           `json:"livraisons"`
	Revenus    decimal.Decimal `json:"revenus"`
}

// Pagination mirrors the list envelope the backend returns.
// Total is the number of records across all pages.
type Pagination struct {
	Current  int `json:"current"`
	PageSize int `json:"-"`
	Total    int `json:"total"`
}

// Normalize enforces current ≥ 1, total ≥ 0 and a positive page size.
func (p Pagination) Normalize(pageSize int) Pagination {
	if p.Current < 1 {
		p.Current = 1
	}
	if p.Total < 0 {
		p.Total = 0
	}
	if p.PageSize < 1 {
		p.PageSize = pageSize
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	return p
}

// Pages returns the number of pages needed for Total records.
func (p Pagination) Pages() int {
	if p.Total <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
