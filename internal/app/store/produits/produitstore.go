// Package produits is the gateway to the backend's super-admin produits
// endpoints.
package produits

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/shopspring/decimal"
)

const basePath = "/super-admin/produits"

// Multipart file part names the backend expects.
const (
	PhotoField = "photo"
	VideoField = "videoDemoFile"
)

// Store wraps the produits endpoints.
type Store struct {
	api *apiclient.Client
}

// New returns a produits Store on top of api.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// ListParams selects one page of produits. Zero values are not sent.
type ListParams struct {
	Page  int
	Limit int
}

// ListResult is one page plus the pagination envelope.
type ListResult struct {
	Items      []models.Produit
	Pagination models.Pagination
	Count      int
}

// Media holds the newly chosen uploads for a save. Nil means "keep what the
// backend already has".
type Media struct {
	Photo *apiclient.File
	Video *apiclient.File
}

type listEnvelope struct {
	Produits   []models.Produit  `json:"produits"`
	Pagination models.Pagination `json:"pagination"`
	Count      int               `json:"count"`
}

// List fetches one page of produits.
func (s *Store) List(ctx context.Context, sess *models.Session, p ListParams) (ListResult, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var env listEnvelope
	if err := s.api.DoJSON(ctx, sess, http.MethodGet, basePath, q, nil, &env); err != nil {
		return ListResult{}, fmt.Errorf("list produits: %w", err)
	}

	res := ListResult{
		Items:      env.Produits,
		Pagination: env.Pagination,
		Count:      env.Count,
	}
	if res.Items == nil {
		res.Items = []models.Produit{}
	}
	return res, nil
}

// Get fetches one produit. The backend may wrap it as {"produit": {...}}
// or send it bare.
func (s *Store) Get(ctx context.Context, sess *models.Session, id string) (models.Produit, error) {
	var raw json.RawMessage
	if err := s.api.DoJSON(ctx, sess, http.MethodGet, itemPath(id), nil, nil, &raw); err != nil {
		return models.Produit{}, fmt.Errorf("get produit %s: %w", id, err)
	}

	var wrapped struct {
		Produit *models.Produit `json:"produit"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Produit != nil {
		return *wrapped.Produit, nil
	}
	var p models.Produit
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Produit{}, fmt.Errorf("decode produit %s: %w", id, err)
	}
	return p, nil
}

// Create posts a new produit as multipart with any chosen media.
func (s *Store) Create(ctx context.Context, sess *models.Session, in models.ProduitInput, media Media) error {
	if err := s.api.DoMultipart(ctx, sess, http.MethodPost, basePath, BuildForm(in, media), nil); err != nil {
		return fmt.Errorf("create produit: %w", err)
	}
	return nil
}

// Update replaces a produit's fields. Media parts are sent only when a new
// file was chosen, so existing photo/video stay untouched otherwise.
func (s *Store) Update(ctx context.Context, sess *models.Session, id string, in models.ProduitInput, media Media) error {
	if err := s.api.DoMultipart(ctx, sess, http.MethodPut, itemPath(id), BuildForm(in, media), nil); err != nil {
		return fmt.Errorf("update produit %s: %w", id, err)
	}
	return nil
}

// Delete removes a produit.
func (s *Store) Delete(ctx context.Context, sess *models.Session, id string) error {
	if err := s.api.DoJSON(ctx, sess, http.MethodDelete, itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete produit %s: %w", id, err)
	}
	return nil
}

// ToggleStatus flips a produit between active and inactive.
func (s *Store) ToggleStatus(ctx context.Context, sess *models.Session, id string) error {
	if err := s.api.DoJSON(ctx, sess, http.MethodPatch, itemPath(id)+"/toggle", nil, struct{}{}, nil); err != nil {
		return fmt.Errorf("toggle produit %s: %w", id, err)
	}
	return nil
}

// BuildForm encodes a produit payload. Optional values that are nil are
// left out entirely.
func BuildForm(in models.ProduitInput, media Media) *apiclient.Form {
	f := apiclient.NewForm()
	f.Add("nom", in.Nom)
	f.Add("pv", in.PV.String())
	f.AddOptional("consignePromo", in.ConsignePromo)
	f.Add("prixPartenaire", in.PrixPartenaire.String())
	f.Add("prixClient", in.PrixClient.String())
	f.AddOptional("prixPromo", decimalPtr(in.PrixPromo))
	f.Add("promoActive", strconv.FormatBool(in.PromoActive))
	f.Add("categorie", string(in.Categorie))
	f.Add("description", in.Description)
	f.AddOptional("modeEmploi", in.ModeEmploi)

	f.AttachFile(PhotoField, media.Photo)
	f.AttachFile(VideoField, media.Video)
	return f
}

func decimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func itemPath(id string) string {
	return basePath + "/" + url.PathEscape(id)
}
