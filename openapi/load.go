package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/oas2mcp/oas2mcp/internal/netsafe"
	"github.com/oas2mcp/oas2mcp/internal/options"
	"github.com/oas2mcp/oas2mcp/oaserr"
)

// LoadOption configures a Load call. The shape is a direct generalization
// of the teacher's parser.Option / parser_options.go: exactly one input
// source, plus optional resource limits and HTTP behavior.
type LoadOption func(*loadConfig) error

type loadConfig struct {
	filePath *string
	url      *string
	reader   io.Reader
	bytes    []byte

	resolveHTTPRefs    bool
	insecureSkipVerify bool
	httpClient         *http.Client
	maxRefDepth        int
	sourceName         string
}

// WithFilePath loads the spec from a local file path.
func WithFilePath(path string) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithURL loads the spec from an HTTP(S) URL using an SSRF-safe client
// unless WithHTTPClient overrides it. Fetching only happens when
// WithResolveHTTPRefs has been set, mirroring the teacher's default-off
// posture for any network access triggered by ingesting a spec.
func WithURL(url string) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.url = &url
		return nil
	}
}

// WithReader loads the spec from an io.Reader.
func WithReader(r io.Reader) LoadOption {
	return func(cfg *loadConfig) error {
		if r == nil {
			return fmt.Errorf("openapi: reader must not be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes loads the spec from an in-memory byte slice (the CLI's
// --spec-inline case).
func WithBytes(data []byte) LoadOption {
	return func(cfg *loadConfig) error {
		if data == nil {
			return fmt.Errorf("openapi: bytes must not be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithResolveHTTPRefs permits WithURL to actually perform a network fetch.
// Off by default: a spec source is frequently caller-supplied, and a
// network fetch triggered purely by loading a document is an SSRF surface
// the bridge does not open unless explicitly asked to.
func WithResolveHTTPRefs(enabled bool) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.resolveHTTPRefs = enabled
		return nil
	}
}

// WithHTTPClient overrides the SSRF-safe default client used for WithURL.
func WithHTTPClient(client *http.Client) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithMaxRefDepth bounds $ref resolution recursion (default 100).
func WithMaxRefDepth(depth int) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithSourceName overrides the name reported for this document in error
// messages (defaults to the file path / URL / "stdin" / "inline").
func WithSourceName(name string) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// Load reads, parses, $ref-resolves, and structurally validates an
// OpenAPI document from exactly one configured source.
func Load(opts ...LoadOption) (*Document, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, &oaserr.SpecLoadError{Message: "invalid load option", Cause: err}
		}
	}
	if err := options.ValidateSingleInputSource(
		"openapi: must specify an input source (WithFilePath, WithURL, WithReader, or WithBytes)",
		"openapi: must specify exactly one input source",
		cfg.filePath != nil, cfg.url != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, &oaserr.SpecLoadError{Message: err.Error()}
	}

	source, data, err := fetch(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != "" {
		source = cfg.sourceName
	}

	tree, err := decodeToTree(data)
	if err != nil {
		if sle, ok := err.(*oaserr.SpecLoadError); ok {
			sle.Source = source
			return nil, sle
		}
		return nil, &oaserr.SpecLoadError{Source: source, Cause: err}
	}

	tree = normalizeOAS2(tree)

	resolver := newRefResolver(tree, cfg.maxRefDepth)
	resolvedAny, err := resolver.Resolve(tree, 0)
	if err != nil {
		return nil, wrapShapeError(err, source)
	}
	resolved, ok := resolvedAny.(map[string]any)
	if !ok {
		return nil, &oaserr.SpecShapeError{Path: source, Message: "document root is not an object"}
	}
	// YAML decodes an unquoted info.version such as 1 or 1.0 as a number;
	// the object model keeps it as a string.
	if info, ok := resolved["info"].(map[string]any); ok {
		if v, ok := info["version"]; ok && v != nil {
			if _, isString := v.(string); !isString {
				info["version"] = fmt.Sprint(v)
			}
		}
	}

	jsonBytes, err := json.Marshal(resolved)
	if err != nil {
		return nil, &oaserr.SpecLoadError{Source: source, Message: "failed to re-encode resolved document", Cause: err}
	}
	var doc Document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, &oaserr.SpecLoadError{Source: source, Message: "failed to decode document into object model", Cause: err}
	}

	if err := validateStructure(&doc, source); err != nil {
		return nil, err
	}
	return &doc, nil
}

func wrapShapeError(err error, source string) error {
	if sse, ok := err.(*oaserr.SpecShapeError); ok && sse.Path == "" {
		sse.Path = source
	}
	return err
}

func fetch(cfg *loadConfig) (source string, data []byte, err error) {
	switch {
	case cfg.filePath != nil:
		b, readErr := os.ReadFile(*cfg.filePath)
		if readErr != nil {
			return *cfg.filePath, nil, &oaserr.SpecLoadError{Source: *cfg.filePath, Cause: readErr}
		}
		return *cfg.filePath, b, nil

	case cfg.url != nil:
		if !cfg.resolveHTTPRefs {
			return *cfg.url, nil, &oaserr.SpecLoadError{Source: *cfg.url, Message: "fetching a spec from a URL requires WithResolveHTTPRefs(true)"}
		}
		client := cfg.httpClient
		if client == nil {
			client = netsafe.NewClient(30*time.Second, false)
		}
		resp, getErr := client.Get(*cfg.url)
		if getErr != nil {
			return *cfg.url, nil, &oaserr.SpecLoadError{Source: *cfg.url, Cause: getErr}
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return *cfg.url, nil, &oaserr.SpecLoadError{Source: *cfg.url, Message: fmt.Sprintf("unexpected status %d fetching spec", resp.StatusCode)}
		}
		b, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return *cfg.url, nil, &oaserr.SpecLoadError{Source: *cfg.url, Cause: readErr}
		}
		return *cfg.url, b, nil

	case cfg.reader != nil:
		b, readErr := io.ReadAll(cfg.reader)
		if readErr != nil {
			return "stdin", nil, &oaserr.SpecLoadError{Source: "stdin", Cause: readErr}
		}
		return "stdin", b, nil

	default:
		return "inline", cfg.bytes, nil
	}
}
