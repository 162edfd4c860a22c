// Package offline serves the web client's static shell network-first,
// falling back to a cached copy when the asset origin is unreachable.
package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// CacheName is the current cache version. Activate drops every other one.
const CacheName = "taskflow-v2-offline"

// ShellAssets are pre-cached by Install.
var ShellAssets = []string{
	"/",
	"/index.html",
	"/index.tsx",
	"/logo.svg",
	"/manifest.json",
}

// Worker fetches from origin and keeps successful responses in cache.
type Worker struct {
	origin *url.URL
	client *http.Client
	cache  Cache
	name   string
}

// NewWorker validates origin, which must be an absolute http(s) URL.
func NewWorker(origin string, cache Cache, client *http.Client) (*Worker, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse asset origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("asset origin %q must be http or https", origin)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Worker{origin: u, client: client, cache: cache, name: CacheName}, nil
}

// Install pre-caches the shell assets. It fails if any asset cannot be
// fetched with status 200.
func (w *Worker) Install(ctx context.Context) error {
	for _, asset := range ShellAssets {
		e, err := w.fetch(ctx, asset, "")
		if err != nil {
			return fmt.Errorf("install %s: %w", asset, err)
		}
		if e.Status != http.StatusOK {
			return fmt.Errorf("install %s: unexpected status %d", asset, e.Status)
		}
		if err := w.cache.Put(ctx, w.name, cacheKey(asset, ""), e); err != nil {
			return fmt.Errorf("install %s: %w", asset, err)
		}
	}
	return nil
}

// Activate removes caches left behind by previous versions.
func (w *Worker) Activate(ctx context.Context) error {
	names, err := w.cache.Names(ctx)
	if err != nil {
		return fmt.Errorf("list caches: %w", err)
	}
	for _, name := range names {
		if name == w.name {
			continue
		}
		if err := w.cache.Drop(ctx, name); err != nil {
			return fmt.Errorf("drop cache %s: %w", name, err)
		}
		log.WithField("cache", name).Info("Dropped stale offline cache")
	}
	return nil
}

func (w *Worker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.Header().Set("Allow", http.MethodGet)
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key := cacheKey(r.URL.Path, r.URL.RawQuery)

	e, err := w.fetch(r.Context(), r.URL.Path, r.URL.RawQuery)
	if err != nil {
		cached, ok, cerr := w.cache.Get(r.Context(), w.name, key)
		if cerr != nil {
			log.WithError(cerr).WithField("key", key).Warn("Offline cache read failed")
		}
		if !ok {
			log.WithError(err).WithField("key", key).Warn("Asset origin unreachable and nothing cached")
			http.Error(rw, "asset unavailable offline", http.StatusGatewayTimeout)
			return
		}
		writeEntry(rw, cached)
		return
	}

	if e.Status == http.StatusOK {
		if err := w.cache.Put(r.Context(), w.name, key, e); err != nil {
			log.WithError(err).WithField("key", key).Warn("Offline cache write failed")
		}
	}
	writeEntry(rw, e)
}

func (w *Worker) fetch(ctx context.Context, path, rawQuery string) (*Entry, error) {
	target := *w.origin
	target.Path = strings.TrimSuffix(w.origin.Path, "/") + cacheKey(path, "")
	target.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	header := resp.Header.Clone()
	header.Del("Content-Length")
	return &Entry{Status: resp.StatusCode, Header: header, Body: body}, nil
}

func writeEntry(rw http.ResponseWriter, e *Entry) {
	for k, vs := range e.Header {
		for _, v := range vs {
			rw.Header().Add(k, v)
		}
	}
	rw.WriteHeader(e.Status)
	_, _ = rw.Write(e.Body)
}
