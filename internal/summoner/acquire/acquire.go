package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"nq2jld/internal/config"
	"nq2jld/internal/jsonld"
	"nq2jld/internal/minioWrapper"
	"nq2jld/internal/triples"
	"nq2jld/pkg"

	"github.com/piprate/json-gold/ld"
	log "github.com/sirupsen/logrus"
)

// AgentName is matched against robots.txt groups
const AgentName = "nq2jld"

var UserAgent = AgentName + "/" + pkg.VERSION

var ErrUnknownFormat = errors.New("unknown input format")

// Input is an opened source and the format its bytes are in
type Input struct {
	Body   io.ReadCloser
	Format string
}

// Opener resolves configured sources to readable inputs
type Opener struct {
	Minio  *minioWrapper.MinioClientWrapper // needed for s3 sources only
	Client *http.Client
	Rude   bool // ignore robots.txt for every url source
}

// Open opens the bytes behind a source. The caller closes Input.Body.
func (o Opener) Open(ctx context.Context, s config.Source) (Input, error) {
	switch s.SourceType {
	case config.FileSource, "":
		return openFile(s)
	case config.S3Source:
		if o.Minio == nil {
			return Input{}, fmt.Errorf("source %s: s3 sources need a minio connection", s.Name)
		}
		format, err := DetectFormat(s.Format, s.URL)
		if err != nil {
			return Input{}, fmt.Errorf("source %s: %w", s.Name, err)
		}
		body, err := o.Minio.Open(ctx, s.URL)
		if err != nil {
			return Input{}, err
		}
		return Input{Body: body, Format: format}, nil
	case config.URLSource:
		return o.fetch(ctx, s)
	default:
		return Input{}, fmt.Errorf("source %s: unknown sourcetype %q", s.Name, s.SourceType)
	}
}

func openFile(s config.Source) (Input, error) {
	if s.URL == "-" {
		format := s.Format
		if format == "" {
			format = config.NQuads
		}
		format, err := DetectFormat(format, "")
		if err != nil {
			return Input{}, err
		}
		return Input{Body: io.NopCloser(os.Stdin), Format: format}, nil
	}

	format, err := DetectFormat(s.Format, s.URL)
	if err != nil {
		return Input{}, fmt.Errorf("source %s: %w", s.Name, err)
	}
	f, err := os.Open(s.URL)
	if err != nil {
		return Input{}, err
	}
	return Input{Body: f, Format: format}, nil
}

func (o Opener) fetch(ctx context.Context, s config.Source) (Input, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return Input{}, fmt.Errorf("source %s: %w", s.Name, err)
	}
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	if o.Rude || s.Rude {
		log.Info("Rude indexing mode enabled; ignoring robots.txt for ", s.Name)
	} else if err := checkRobots(ctx, client, u); err != nil {
		return Input{}, fmt.Errorf("source %s: %w", s.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Input{}, err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", config.AcceptContentType)

	resp, err := client.Do(req)
	if err != nil {
		return Input{}, fmt.Errorf("source %s: %w", s.Name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return Input{}, fmt.Errorf("source %s: GET %s returned %s", s.Name, s.URL, resp.Status)
	}

	format, err := DetectFormat(s.Format, u.Path)
	if err != nil {
		format, err = formatFromContentType(resp.Header.Get("Content-Type"))
	}
	if err != nil {
		resp.Body.Close()
		return Input{}, fmt.Errorf("source %s: %w", s.Name, err)
	}
	return Input{Body: resp.Body, Format: format}, nil
}

// DetectFormat normalizes an explicit format, or derives one from the file extension
func DetectFormat(format, location string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case config.NQuads, config.NTriples:
		return config.NQuads, nil
	case config.Turtle, "ttl":
		return config.Turtle, nil
	case config.JSONLD:
		return config.JSONLD, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	ext := filepath.Ext(location)
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		ext = path.Ext(u.Path)
	}
	switch strings.ToLower(ext) {
	case ".nq", ".nt":
		return config.NQuads, nil
	case ".ttl":
		return config.Turtle, nil
	case ".jsonld", ".json":
		return config.JSONLD, nil
	}
	return "", fmt.Errorf("%w: cannot tell the format of %q, set format in the source config", ErrUnknownFormat, location)
}

func formatFromContentType(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: content type %q", ErrUnknownFormat, contentType)
	}
	switch mediaType {
	case "application/n-quads", "application/n-triples":
		return config.NQuads, nil
	case "text/turtle", "application/x-turtle":
		return config.Turtle, nil
	case "application/ld+json", "application/json":
		return config.JSONLD, nil
	}
	return "", fmt.Errorf("%w: content type %q", ErrUnknownFormat, mediaType)
}

// NewTripleSource picks the reader for a format. Turtle resolves relative
// IRIs against options.Base.
func NewTripleSource(r io.Reader, format string, proc *ld.JsonLdProcessor, options *ld.JsonLdOptions) (jsonld.TripleSource, error) {
	switch format {
	case config.NQuads, config.NTriples:
		return triples.NewNQuadsReader(r), nil
	case config.Turtle:
		base := ""
		if options != nil {
			base = options.Base
		}
		return triples.NewTurtleReader(r, base), nil
	case config.JSONLD:
		src, err := triples.FromJSONLD(r, proc, options)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
