package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/phenrril/newmobile/internal/domain"
)

// Client talks to the catalog backend over REST and implements
// domain.CatalogGateway. One fetch opens an edit session; one multipart PATCH
// closes it.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a catalog client for the given base URL. When creds is
// non-nil the underlying client carries OAuth2 client-credentials tokens.
func NewClient(base string, creds *clientcredentials.Config) *Client {
	hc := &http.Client{Timeout: 30 * time.Second}
	if creds != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		hc = creds.Client(ctx)
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

func (c *Client) FetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("product id empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog: status %d: %s", resp.StatusCode, body)
	}
	var doc ProductDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode product: %w", err)
	}
	return Hydrate(&doc), nil
}

func (c *Client) ListProducts(ctx context.Context, page, limit int) ([]domain.ProductSummary, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	u := fmt.Sprintf("%s/products?page=%d&limit=%d", c.base, page, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, 0, fmt.Errorf("catalog: status %d: %s", resp.StatusCode, body)
	}
	var out struct {
		Items []domain.ProductSummary `json:"items"`
		Total int                     `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, 0, fmt.Errorf("catalog: decode list: %w", err)
	}
	return out.Items, out.Total, nil
}

// SubmitProduct sends one atomic multipart update: a "data" part with the
// JSON document and one "images" file part per attachment, in order.
func (c *Client) SubmitProduct(ctx context.Context, sub *domain.Submission) error {
	wireID, ok := sub.ProductID.Wire()
	if !ok {
		return errors.New("submit requires a persisted product id")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	dataHeader := textproto.MIMEHeader{}
	dataHeader.Set("Content-Disposition", `form-data; name="data"`)
	dataHeader.Set("Content-Type", "application/json")
	part, err := w.CreatePart(dataHeader)
	if err != nil {
		return err
	}
	if _, err := part.Write(sub.Document); err != nil {
		return err
	}

	for i, f := range sub.Files {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("image-%d", i)
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, escapeQuotes(name)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		fp, err := w.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := fp.Write(f.Data); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	u := fmt.Sprintf("%s/products/%s/%s", c.base, sub.Type, url.PathEscape(wireID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("catalog: status %d: %s", resp.StatusCode, body)
	}
	log.Info().Str("product", wireID).Str("type", string(sub.Type)).Int("files", len(sub.Files)).Msg("product submitted")
	return nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("catalog: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
