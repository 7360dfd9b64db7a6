// Package source fetches raw documents (forms, vocabularies, OpenAPI specs)
// from local files, an fs.FS, or HTTP(S) URLs.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// Kind tells the loader which strategy resolves a Source.
type Kind int

const (
	KindFile Kind = iota
	KindFS
	KindURL
)

// Source identifies a document location.
type Source struct {
	kind     Kind
	location string
}

// FromFile points at a path on the local filesystem.
func FromFile(path string) Source { return Source{kind: KindFile, location: path} }

// FromFS points at a path inside the loader's fs.FS.
func FromFS(path string) Source { return Source{kind: KindFS, location: path} }

// FromURL points at an HTTP(S) URL.
func FromURL(url string) Source { return Source{kind: KindURL, location: url} }

// Parse classifies raw as a URL when it carries an http(s) scheme and as a
// file path otherwise.
func Parse(raw string) Source {
	trimmed := strings.TrimSpace(raw)
	if IsURL(trimmed) {
		return FromURL(trimmed)
	}
	return FromFile(trimmed)
}

// IsURL reports whether value carries an http(s) scheme.
func IsURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

// Kind returns the source kind.
func (s Source) Kind() Kind { return s.kind }

// Location returns the path or URL.
func (s Source) Location() string { return s.location }

func (s Source) String() string { return s.location }

// Options configures a Loader.
type Options struct {
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// Loader reads documents by delegating to file, fs.FS, or HTTP strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// New constructs a Loader from pre-resolved options.
func New(options Options) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTP:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches the raw bytes behind src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if strings.TrimSpace(src.location) == "" {
		return nil, errors.New("source loader: location is required")
	}

	var (
		data []byte
		err  error
	)

	switch src.kind {
	case KindFile:
		data, err = loadFile(ctx, src.location)
	case KindFS:
		data, err = loadFromFS(ctx, l.fs, src.location)
	case KindURL:
		if !l.allowHTTP {
			return nil, errors.New("source loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.location, l.timeout)
	default:
		err = errors.New("source loader: unsupported source kind")
	}
	if err != nil {
		return nil, fmt.Errorf("source loader: %s: %w", src.location, err)
	}
	return data, nil
}
