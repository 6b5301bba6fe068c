// internal/app/features/dashboard/shell.go
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/app/store/produits"
	"github.com/dalemusser/longrichadmin/internal/app/store/superadmin"
	"github.com/dalemusser/longrichadmin/internal/app/system/format"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BasePath is where the dashboard is mounted.
const BasePath = "/admin/dashboard"

// DefaultSection is shown for /admin/dashboard and for paths that match no
// menu entry.
const DefaultSection = "produits"

// ErrSessionExpired is returned by Load when the backend rejected the token.
var ErrSessionExpired = errors.New("dashboard: session expired")

// NavItem is one sidebar entry.
type NavItem struct {
	Key    string
	Label  string
	Icon   string
	URL    string
	Active bool
}

type section struct {
	key, label, icon string
	soon             string // placeholder heading; "" for built screens
}

var sections = []section{
	{key: "produits", label: "Produits Longrich", icon: "package"},
	{key: "sante", label: "Packs Santé", icon: "heart-pulse"},
	{key: "proprietaires", label: "Propriétaires", icon: "user", soon: "Propriétaires bientôt !"},
	{key: "boutiques", label: "Boutiques", icon: "store", soon: "Boutiques bientôt !"},
	{key: "admins", label: "Admins Secondaires", icon: "users", soon: "Admins bientôt !"},
	{key: "livraisons", label: "Livraisons", icon: "truck", soon: "Livraisons bientôt !"},
}

// Placeholder returns the "bientôt" heading for a section that has no
// screen yet, and whether key is such a section.
func Placeholder(key string) (string, bool) {
	for _, s := range sections {
		if s.key == key && s.soon != "" {
			return s.soon, true
		}
	}
	return "", false
}

// ActiveSection derives the highlighted menu key from a request path.
func ActiveSection(path string) string {
	rest := strings.TrimPrefix(path, BasePath)
	rest = strings.TrimPrefix(rest, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	for _, s := range sections {
		if s.key == rest {
			return s.key
		}
	}
	return DefaultSection
}

// Nav returns the sidebar with the entry for path marked active.
func Nav(path string) []NavItem {
	active := ActiveSection(path)
	items := make([]NavItem, 0, len(sections))
	for _, s := range sections {
		items = append(items, NavItem{
			Key:    s.key,
			Label:  s.label,
			Icon:   s.icon,
			URL:    BasePath + "/" + s.key,
			Active: s.key == active,
		})
	}
	return items
}

// StatCard is one summary tile in the dashboard header.
type StatCard struct {
	Label string
	Value string
	Icon  string
}

// Shell is everything the dashboard frame shows around a section.
type Shell struct {
	Admin         models.SuperAdmin
	HasAdmin      bool
	Today         string
	Stats         models.Stats
	Cards         []StatCard
	StatsDegraded bool // stats endpoint failed; counters are partial
	Nav           []NavItem
	ActiveSection string
}

// Greeting is the header line, e.g. "Bonjour, Awa".
func (s Shell) Greeting() string {
	if !s.HasAdmin || s.Admin.Nom == "" {
		return ""
	}
	return "Bonjour, " + s.Admin.Nom
}

// ShellLoader fetches the profile and the summary counters for the frame.
type ShellLoader struct {
	Admins   *superadmin.Store
	Produits *produits.Store
	Log      *zap.Logger
	Now      func() time.Time
}

// NewShellLoader wires a loader to its gateways.
func NewShellLoader(admins *superadmin.Store, produitStore *produits.Store, logger *zap.Logger) *ShellLoader {
	return &ShellLoader{
		Admins:   admins,
		Produits: produitStore,
		Log:      logger,
		Now:      time.Now,
	}
}

// Load fetches profile and stats concurrently. Each call fails on its own:
// a stats failure falls back to the produits count, a profile failure
// leaves the greeting out. Only a 401 on the profile aborts, with
// ErrSessionExpired.
func (l *ShellLoader) Load(ctx context.Context, sess *models.Session, path string) (Shell, error) {
	shell := Shell{
		Nav:           Nav(path),
		ActiveSection: ActiveSection(path),
		Today:         format.LongDateFR(l.now()),
	}

	var (
		admin      models.SuperAdmin
		profileErr error
		stats      models.Stats
		degraded   bool
	)

	var g errgroup.Group
	g.Go(func() error {
		admin, profileErr = l.Admins.Profile(ctx, sess)
		return nil
	})
	g.Go(func() error {
		stats, degraded = l.loadStats(ctx, sess)
		return nil
	})
	_ = g.Wait()

	if profileErr != nil {
		if errors.Is(profileErr, apiclient.ErrUnauthorized) {
			return Shell{}, fmt.Errorf("%w: %w", ErrSessionExpired, profileErr)
		}
		l.Log.Warn("dashboard: profile unavailable", zap.Error(profileErr))
	} else {
		shell.Admin = admin
		shell.HasAdmin = true
	}

	shell.Stats = stats
	shell.StatsDegraded = degraded
	shell.Cards = Cards(stats)
	return shell, nil
}

// loadStats asks for the stats endpoint and, when that fails, derives the
// produits counter from a one-row produits page.
func (l *ShellLoader) loadStats(ctx context.Context, sess *models.Session) (models.Stats, bool) {
	stats, err := l.Admins.Stats(ctx, sess)
	if err == nil {
		return stats, false
	}
	l.Log.Info("dashboard: stats unavailable, falling back to produits count", zap.Error(err))

	res, err := l.Produits.List(ctx, sess, produits.ListParams{Limit: 1})
	if err != nil {
		l.Log.Warn("dashboard: produits count fallback failed", zap.Error(err))
		return models.Stats{}, true
	}
	n := res.Count
	if n == 0 {
		n = res.Pagination.Total
	}
	return models.Stats{Produits: int64(n)}, true
}

// Cards formats the four header tiles.
func Cards(s models.Stats) []StatCard {
	return []StatCard{
		{Label: "Produits Longrich", Value: format.Count(s.Produits), Icon: "package"},
		{Label: "Boutiques", Value: format.Count(s.Boutiques), Icon: "store"},
		{Label: "Commandes", Value: format.Count(s.Commandes), Icon: "shopping-cart"},
		{Label: "Revenus", Value: format.FCFA(s.Revenus), Icon: "banknote"},
	}
}

func (l *ShellLoader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
