// internal/pkg/gemini/client.go
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/novastore/internal/config"
	"github.com/your-org/novastore/internal/domain/order"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/pkg/logger"
	"google.golang.org/genai"
)

// generator sends one prompt and returns the raw JSON text of the answer
type generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Client asks the generative model for search rankings and fabricated
// addresses. Every failure degrades to an empty result; nothing is retried.
type Client struct {
	gen     generator
	timeout time.Duration
	log     *logrus.Entry
}

// NewClient builds a client from config. Without an API key the client is
// disabled and every call returns an empty result.
func NewClient(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Client, error) {
	entry := logger.Component(log, "gemini")

	if cfg.AI.APIKey == "" {
		entry.Warn("GEMINI_API_KEY not set, AI search and address lookup disabled")
		return &Client{timeout: cfg.AI.RequestTimeout, log: entry}, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.AI.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		gen:     &genaiGenerator{client: gc, model: cfg.AI.Model},
		timeout: cfg.AI.RequestTimeout,
		log:     entry,
	}, nil
}

// Enabled reports whether calls reach the model
func (c *Client) Enabled() bool {
	return c.gen != nil
}

type catalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

var recommendationSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

// Recommend returns product ids ordered by relevance to query. The ids are
// not guaranteed to exist in products.
func (c *Client) Recommend(ctx context.Context, query string, products []product.Product) []string {
	if c.gen == nil {
		return []string{}
	}

	entries := make([]catalogEntry, len(products))
	for i, p := range products {
		entries[i] = catalogEntry{ID: p.ID, Name: p.Name, Desc: p.Description}
	}
	listing, err := json.Marshal(entries)
	if err != nil {
		c.log.WithError(err).Warn("Failed to encode catalog for recommendation prompt")
		return []string{}
	}

	prompt := fmt.Sprintf(
		"A shopper is searching for: %q. Available products: %s. "+
			"Return the ids of the most relevant products, most relevant first, as a JSON array of strings only.",
		query, listing)

	text, err := c.generate(ctx, prompt, recommendationSchema)
	if err != nil {
		c.log.WithError(err).WithField("query", query).Warn("AI search failed")
		return []string{}
	}

	ids, err := parseRecommendations(text)
	if err != nil {
		c.log.WithError(err).WithField("query", query).Warn("AI search returned malformed response")
		return []string{}
	}
	return ids
}

var addressSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"street":  {Type: genai.TypeString},
		"city":    {Type: genai.TypeString},
		"state":   {Type: genai.TypeString},
		"zipCode": {Type: genai.TypeString},
		"country": {Type: genai.TypeString},
	},
	Required: []string{"street", "city", "state", "zipCode", "country"},
}

// ResolveAddress asks the model for a plausible address near the
// coordinates. The result is fabricated, not geocoded. It returns nil on any
// failure.
func (c *Client) ResolveAddress(ctx context.Context, lat, lng float64) *order.Address {
	if c.gen == nil {
		return nil
	}

	prompt := fmt.Sprintf(
		"Given the coordinates lat: %f, lng: %f, generate a plausible, realistic home address in a major city nearby, "+
			"with street, city, state, zip code and country. Respond only with a JSON object.",
		lat, lng)

	text, err := c.generate(ctx, prompt, addressSchema)
	if err != nil {
		c.log.WithError(err).Warn("AI address lookup failed")
		return nil
	}

	addr, err := parseAddress(text)
	if err != nil {
		c.log.WithError(err).Warn("AI address lookup returned malformed response")
		return nil
	}
	return addr
}

func (c *Client) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.gen.GenerateJSON(ctx, prompt, schema)
}

func parseRecommendations(text string) ([]string, error) {
	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		return nil, errors.New("expected a JSON array")
	}
	return ids, nil
}

type addressPayload struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Country *string `json:"country"`
}

func parseAddress(text string) (*order.Address, error) {
	var p addressPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, err
	}

	fields := map[string]*string{
		"street":  p.Street,
		"city":    p.City,
		"state":   p.State,
		"zipCode": p.ZipCode,
		"country": p.Country,
	}
	for name, v := range fields {
		if v == nil {
			return nil, fmt.Errorf("missing field %s", name)
		}
	}

	return &order.Address{
		Street:  *p.Street,
		City:    *p.City,
		State:   *p.State,
		ZipCode: *p.ZipCode,
		Country: *p.Country,
	}, nil
}
