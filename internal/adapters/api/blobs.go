package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// BlobsClient fetches authenticated binary content. Streams are handed to
// the caller and never cached; the caller closes them when the view closes.
type BlobsClient struct {
	c *Client
}

// NewBlobs returns the binary-retrieval client.
func NewBlobs(c *Client) *BlobsClient {
	return &BlobsClient{c: c}
}

// FetchEbook streams an e-book's file for an admin preview.
// PRE: id is non-empty
// POST: Caller must close the returned body
func (b *BlobsClient) FetchEbook(ctx context.Context, id string) (io.ReadCloser, string, error) {
	return b.fetch(ctx, "/ebooks/"+url.PathEscape(id)+"/admin-fetch")
}

// FetchCertificate streams a certificate file for an admin preview.
func (b *BlobsClient) FetchCertificate(ctx context.Context, id string) (io.ReadCloser, string, error) {
	return b.fetch(ctx, "/certificates/"+url.PathEscape(id)+"/admin-fetch")
}

// SignedVideoURL asks the backend for a time-limited playback link. The
// signed URL needs no Authorization header; the grant is embedded in it.
func (b *BlobsClient) SignedVideoURL(ctx context.Context, id string) (string, error) {
	var out struct {
		SignedURL string `json:"signedUrl"`
	}
	if err := b.c.getJSON(ctx, "/workout-library/signed-url/"+url.PathEscape(id), &out); err != nil {
		return "", err
	}
	return out.SignedURL, nil
}

// FetchAsset streams a backend-root-relative asset such as a receipt image
// or thumbnail (paths the backend returns like "/uploads/receipts/x.png").
// PRE: relPath begins with "/"
// POST: Caller must close the returned body
func (b *BlobsClient) FetchAsset(ctx context.Context, relPath string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(relPath, "/") {
		relPath = "/" + relPath
	}
	resp, err := b.c.doURL(ctx, http.MethodGet, b.c.rootURL+relPath, nil, "")
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (b *BlobsClient) fetch(ctx context.Context, path string) (io.ReadCloser, string, error) {
	resp, err := b.c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
