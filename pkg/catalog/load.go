package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
	"sigs.k8s.io/yaml"
)

//go:embed default.yaml
var defaultCatalog []byte

// document is the on-disk shape of a catalog file (YAML or JSON).
type document struct {
	Subjects []Subject `json:"subjects"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog: %v", err))
	}
	return c
}

// Parse builds a catalog from YAML or JSON bytes.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(doc.Subjects...)
}

// Marshal renders the catalog in the file format Parse accepts.
func Marshal(c *Catalog) ([]byte, error) {
	return yaml.Marshal(document{Subjects: c.Subjects()})
}

// Load resolves a catalog source. An empty source yields the built-in
// catalog, http(s) URLs are fetched, anything else is read as a file path.
func Load(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return Default(), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetch(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", source, err)
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", source, err)
		}
		log.WithFields(log.Fields{"source": source, "subjects": c.Len()}).Debug("catalog loaded from file")
		return c, nil
	}
}

func fetch(ctx context.Context, url string) (*Catalog, error) {
	client := resty.New().
		SetTimeout(15*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/yaml, application/json;q=0.9, */*;q=0.5")
	defer func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Debug("catalog: close http client")
		}
	}()

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog: fetch %s: %s", url, resp.Status())
	}
	body := resp.Bytes()
	if len(body) == 0 {
		return nil, errors.New("catalog: fetch " + url + ": empty body")
	}
	c, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", url, err)
	}
	log.WithFields(log.Fields{"source": url, "subjects": c.Len()}).Debug("catalog fetched")
	return c, nil
}
