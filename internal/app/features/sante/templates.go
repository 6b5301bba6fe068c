// internal/app/features/sante/templates.go
package sante

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "sante",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
