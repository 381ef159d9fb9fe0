// Package source loads the two inputs of the tracker: the visit log and the
// brewery directory. Each is a JSON array read either over HTTP(S) or from a
// local file; the Postgres repos in package repo satisfy the same interfaces.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// ErrUnavailable is returned when a resource is missing, empty, or the server
// answered with a non-2xx status. Callers treat it as "no data yet".
var ErrUnavailable = errors.New("resource unavailable")

// ErrTooLarge is returned when a remote resource is bigger than the reader
// accepts.
var ErrTooLarge = errors.New("resource too large")

// VisitSource provides the raw visit log.
type VisitSource interface {
	Visits(ctx context.Context) ([]domain.Visit, error)
}

// DirectorySource provides the brewery directory in its own order.
type DirectorySource interface {
	Directory(ctx context.Context) ([]domain.BreweryLocation, error)
}

// maxResourceBytes bounds how much of a remote resource is read.
const maxResourceBytes = 8 << 20

// resource is a JSON document addressed by URL or file path.
type resource struct {
	location string
	client   *http.Client
	now      func() time.Time
}

func newResource(location string, client *http.Client) resource {
	if client == nil {
		client = http.DefaultClient
	}
	return resource{location: location, client: client, now: time.Now}
}

func (r resource) remote() bool {
	return strings.HasPrefix(r.location, "http://") || strings.HasPrefix(r.location, "https://")
}

// read returns the raw bytes of the resource.
func (r resource) read(ctx context.Context) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if r.remote() {
		body, err = r.fetch(ctx)
	} else {
		body, err = os.ReadFile(r.location)
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrUnavailable, err)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnavailable, r.location)
	}
	return body, nil
}

// fetch GETs the resource, defeating intermediate caches: the file is
// replaced wholesale whenever the spreadsheet is re-synced.
func (r resource) fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(r.location)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(r.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: get %s: status %d", ErrUnavailable, r.location, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.location, err)
	}
	if len(body) > maxResourceBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, r.location, maxResourceBytes)
	}
	return body, nil
}

// decodeArray reads the resource and decodes it as a JSON array of T.
// A literal null decodes to an empty slice.
func decodeArray[T any](ctx context.Context, r resource) ([]T, error) {
	body, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.location, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// VisitJSON is a VisitSource backed by a data.json resource.
type VisitJSON struct {
	r resource
}

// NewVisitJSON constructs a VisitJSON reading from location, which is either
// an http(s) URL or a file path. A nil client means http.DefaultClient.
func NewVisitJSON(location string, client *http.Client) *VisitJSON {
	return &VisitJSON{r: newResource(location, client)}
}

// Visits loads the whole visit log.
func (s *VisitJSON) Visits(ctx context.Context) ([]domain.Visit, error) {
	visits, err := decodeArray[domain.Visit](ctx, s.r)
	if err != nil {
		return nil, fmt.Errorf("source.VisitJSON.Visits: %w", err)
	}
	return visits, nil
}

// DirectoryJSON is a DirectorySource backed by a breweries.json resource.
type DirectoryJSON struct {
	r resource
}

// NewDirectoryJSON constructs a DirectoryJSON reading from location, which is
// either an http(s) URL or a file path. A nil client means http.DefaultClient.
func NewDirectoryJSON(location string, client *http.Client) *DirectoryJSON {
	return &DirectoryJSON{r: newResource(location, client)}
}

// Directory loads the whole brewery directory.
func (s *DirectoryJSON) Directory(ctx context.Context) ([]domain.BreweryLocation, error) {
	entries, err := decodeArray[domain.BreweryLocation](ctx, s.r)
	if err != nil {
		return nil, fmt.Errorf("source.DirectoryJSON.Directory: %w", err)
	}
	return entries, nil
}
