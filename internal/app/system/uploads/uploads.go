// Package uploads reads the optional photo and video parts of a resource
// form so they can be forwarded to the backend as they are.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
)

const (
	// MaxRequestBytes caps a whole create or update submission, media included.
	MaxRequestBytes = 200 << 20

	// maxMemory is kept in RAM; larger parts spill to temp files.
	maxMemory = 32 << 20
)

// ErrTooLarge is returned by Parse when the submission exceeds the limit.
var ErrTooLarge = errors.New("uploads: submission too large")

// Parse limits the request body and parses it. Multipart and urlencoded
// bodies are both accepted so forms without file inputs still work.
func Parse(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrTooLarge
	}
	return err
}

// Set tracks the parts opened for one submission so they are released
// together once the backend call is done.
type Set struct {
	open []io.Closer
}

// File returns the part uploaded under field, or nil when the user chose
// nothing. An empty file counts as nothing.
func (s *Set) File(r *http.Request, field string) (*apiclient.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	f, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if fh.Size == 0 {
		_ = f.Close()
		return nil, nil
	}

	s.open = append(s.open, f)
	return &apiclient.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, nil
}

// Close releases every part returned by File.
func (s *Set) Close() {
	for _, c := range s.open {
		_ = c.Close()
	}
	s.open = nil
}
