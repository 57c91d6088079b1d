package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// FileField is a file attached to a multipart submission. The content is
// passed through to the backend opaquely; only presence and the declared
// MIME type are checked before submission.
type FileField struct {
	Name        string // form field name, e.g. "ebook", "cover"
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Form carries a create/update submission. With files present it is sent as
// multipart form data, otherwise as a urlencoded form.
type Form struct {
	Fields url.Values
	Files  []FileField
}

// Set sets a scalar field, allocating Fields on first use.
func (f *Form) Set(key, value string) {
	if f.Fields == nil {
		f.Fields = url.Values{}
	}
	f.Fields.Set(key, value)
}

// Add appends a value under a repeated field key.
func (f *Form) Add(key, value string) {
	if f.Fields == nil {
		f.Fields = url.Values{}
	}
	f.Fields.Add(key, value)
}

// Attach adds a file field.
func (f *Form) Attach(name, filename, contentType string, r io.Reader) {
	f.Files = append(f.Files, FileField{Name: name, Filename: filename, ContentType: contentType, Reader: r})
}

// Resource is the CRUD surface every managed collection exposes. The same
// shape is repeated across videos, ebooks, certificates and plans, so it is
// implemented once by Collection and parameterized by entity type.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, f Form) error
	Update(ctx context.Context, id string, f Form) error
	Delete(ctx context.Context, id string) error
}

// Collection is a generic REST client for one backend collection endpoint.
// envelope names the JSON key the backend wraps list responses in
// (e.g. GET /ebooks returns {"ebooks": [...]}).
type Collection[T any] struct {
	c        *Client
	path     string
	envelope string
}

// NewCollection creates a Collection client.
// PRE: path starts with "/"; envelope is the list response key
// POST: Returns a ready-to-use collection client
func NewCollection[T any](c *Client, path, envelope string) *Collection[T] {
	return &Collection[T]{c: c, path: path, envelope: envelope}
}

// List fetches the full collection. A missing envelope key yields an empty
// slice rather than an error, matching the tolerant re-fetch-on-mount shape
// of the views.
func (col *Collection[T]) List(ctx context.Context) ([]T, error) {
	var raw map[string]json.RawMessage
	if err := col.c.getJSON(ctx, col.path, &raw); err != nil {
		return nil, err
	}
	payload, ok := raw[col.envelope]
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, col.path, err)
	}
	return items, nil
}

// Create submits a new record.
// PRE: f has been validated client-side
// POST: Record persisted on the backend; caller re-fetches the collection
func (col *Collection[T]) Create(ctx context.Context, f Form) error {
	return col.submit(ctx, http.MethodPost, col.path, f)
}

// Update submits changed fields for an existing record. File fields are
// optional on update; omitted files keep the stored media.
func (col *Collection[T]) Update(ctx context.Context, id string, f Form) error {
	return col.submit(ctx, http.MethodPut, col.path+"/"+url.PathEscape(id), f)
}

// Delete removes a record. The caller gates this behind a confirmation step.
func (col *Collection[T]) Delete(ctx context.Context, id string) error {
	resp, err := col.c.do(ctx, http.MethodDelete, col.path+"/"+url.PathEscape(id), nil, "")
	if err != nil {
		return err
	}
	return drain(resp)
}

func (col *Collection[T]) submit(ctx context.Context, method, path string, f Form) error {
	if len(f.Files) == 0 {
		body := strings.NewReader(f.Fields.Encode())
		resp, err := col.c.do(ctx, method, path, body, "application/x-www-form-urlencoded")
		if err != nil {
			return err
		}
		return drain(resp)
	}

	body, contentType, err := encodeMultipart(f)
	if err != nil {
		return err
	}
	resp, err := col.c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return drain(resp)
}

// encodeMultipart buffers the multipart body. Uploads are admin-sized
// (a video or PDF at a time), so buffering beats the complexity of piping.
func encodeMultipart(f Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range f.Fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
		}
	}
	for _, file := range f.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
			file.Name, file.Filename))
		h.Set("Content-Type", file.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &buf, w.FormDataContentType(), nil
}
