// Package sante is the gateway to the backend's packs santé endpoints.
package sante

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
)

const basePath = "/super-admin/sante"

// VideoField is the multipart part name for the demo video.
const VideoField = "videoDemoFile"

// Store wraps the packs santé endpoints.
type Store struct {
	api *apiclient.Client
}

// New returns a sante Store on top of api.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// ListParams selects one page of packs. Zero values are not sent.
type ListParams struct {
	Page  int
	Limit int
}

// ListResult is one page plus the pagination envelope.
type ListResult struct {
	Items      []models.Sante
	Pagination models.Pagination
}

type listEnvelope struct {
	Santes     []models.Sante    `json:"santes"`
	Pagination models.Pagination `json:"pagination"`
}

// List fetches one page of packs santé.
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
		return ListResult{}, fmt.Errorf("list santes: %w", err)
	}
	if env.Santes == nil {
		env.Santes = []models.Sante{}
	}
	return ListResult{Items: env.Santes, Pagination: env.Pagination}, nil
}

// Get fetches one pack, wrapped as {"sante": {...}} or bare.
func (s *Store) Get(ctx context.Context, sess *models.Session, id string) (models.Sante, error) {
	var raw json.RawMessage
	if err := s.api.DoJSON(ctx, sess, http.MethodGet, itemPath(id), nil, nil, &raw); err != nil {
		return models.Sante{}, fmt.Errorf("get sante %s: %w", id, err)
	}

	var wrapped struct {
		Sante *models.Sante `json:"sante"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Sante != nil {
		return *wrapped.Sante, nil
	}
	var out models.Sante
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.Sante{}, fmt.Errorf("decode sante %s: %w", id, err)
	}
	return out, nil
}

// Create posts a new pack. video may be nil.
func (s *Store) Create(ctx context.Context, sess *models.Session, in models.SanteInput, video *apiclient.File) error {
	if err := s.api.DoMultipart(ctx, sess, http.MethodPost, basePath, BuildForm(in, video), nil); err != nil {
		return fmt.Errorf("create sante: %w", err)
	}
	return nil
}

// Update replaces a pack's fields; the video part is sent only when a new
// file was chosen.
func (s *Store) Update(ctx context.Context, sess *models.Session, id string, in models.SanteInput, video *apiclient.File) error {
	if err := s.api.DoMultipart(ctx, sess, http.MethodPut, itemPath(id), BuildForm(in, video), nil); err != nil {
		return fmt.Errorf("update sante %s: %w", id, err)
	}
	return nil
}

// Delete removes a pack.
func (s *Store) Delete(ctx context.Context, sess *models.Session, id string) error {
	if err := s.api.DoJSON(ctx, sess, http.MethodDelete, itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete sante %s: %w", id, err)
	}
	return nil
}

// ToggleStatus flips a pack between active and inactive.
func (s *Store) ToggleStatus(ctx context.Context, sess *models.Session, id string) error {
	if err := s.api.DoJSON(ctx, sess, http.MethodPatch, itemPath(id)+"/toggle", nil, struct{}{}, nil); err != nil {
		return fmt.Errorf("toggle sante %s: %w", id, err)
	}
	return nil
}

// BuildForm encodes a pack payload. packProduits travels as a JSON string.
func BuildForm(in models.SanteInput, video *apiclient.File) *apiclient.Form {
	f := apiclient.NewForm()
	f.Add("categorie", string(in.Categorie))
	f.Add("probleme", in.Probleme)
	f.Add("packProduits", models.EncodePackProduits(in.PackProduits))
	f.Add("consigneUtilisation", in.ConsigneUtilisation)
	f.AddOptional("produitId", in.ProduitID)
	f.AttachFile(VideoField, video)
	return f
}

func itemPath(id string) string {
	return basePath + "/" + url.PathEscape(id)
}
