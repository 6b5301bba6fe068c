package apiclient

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// File is a newly chosen upload to forward to the backend.
type File struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field string
	file  *File
}

// Form is an ordered multipart payload. Optional values left nil and files
// that were not supplied never reach the wire.
type Form struct {
	fields []formField
	files  []formFile
}

// NewForm returns an empty Form.
func NewForm() *Form {
	return &Form{}
}

// Add appends a text field.
func (f *Form) Add(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

// AddOptional appends a text field only when value is non-nil.
func (f *Form) AddOptional(name string, value *string) {
	if value == nil {
		return
	}
	f.Add(name, *value)
}

// AttachFile appends a file part only when file is non-nil.
func (f *Form) AttachFile(field string, file *File) {
	if file == nil || file.Body == nil {
		return
	}
	f.files = append(f.files, formFile{field: field, file: file})
}

// FieldNames lists text field names in order.
func (f *Form) FieldNames() []string {
	out := make([]string, 0, len(f.fields))
	for _, fld := range f.fields {
		out = append(out, fld.name)
	}
	return out
}

// FileFields lists file part names in order.
func (f *Form) FileFields() []string {
	out := make([]string, 0, len(f.files))
	for _, ff := range f.files {
		out = append(out, ff.field)
	}
	return out
}

// Encode streams the multipart body through a pipe while it is read, so a
// large video is never held in memory. The caller must read body to the end
// or close it; done then yields the first write error, if any.
func (f *Form) Encode() (body io.ReadCloser, contentType string, done <-chan error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	contentType = mw.FormDataContentType()

	errc := make(chan error, 1)
	go func() {
		err := f.write(mw)
		pw.CloseWithError(err)
		errc <- err
	}()
	return pr, contentType, errc
}

func (f *Form) write(mw *multipart.Writer) error {
	for _, fld := range f.fields {
		if err := mw.WriteField(fld.name, fld.value); err != nil {
			return fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}

	for _, ff := range f.files {
		ct := ff.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(ff.field), quoteEscaper.Replace(ff.file.Filename)))
		h.Set("Content-Type", ct)

		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create part %s: %w", ff.field, err)
		}
		if _, err := io.Copy(part, ff.file.Body); err != nil {
			return fmt.Errorf("copy part %s: %w", ff.field, err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
