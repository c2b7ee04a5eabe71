package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tartampluch/go-folio/internal/config"
)

// document is a rendered file and its metadata for HTTP caching.
type document struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

func newDocument(data []byte, contentType string, modified time.Time) *document {
	hash := sha256.Sum256(data)
	return &document{
		data:         data,
		contentType:  contentType,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: modified.UTC().Format(http.TimeFormat),
	}
}

// notModified evaluates the conditional request headers against doc.
func (doc *document) notModified(r *http.Request) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == doc.etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, doc.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

// serveDocument writes doc with caching headers, or 304 when the client copy is fresh.
func serveDocument(w http.ResponseWriter, r *http.Request, doc *document) {
	h := w.Header()
	h.Set(config.HeaderContentType, doc.contentType)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, doc.etag)
	h.Set(config.HeaderLastModified, doc.lastModified)

	if doc.notModified(r) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, bytes.NewReader(doc.data)); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
