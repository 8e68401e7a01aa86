package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// ImageFinder suggests candidate product photos for a variant editor, so the
// operator does not have to hunt them down by hand. DuckDuckGo's image
// endpoint is tried first; Google Images is the fallback.
type ImageFinder struct {
	client *http.Client
}

func NewImageFinder() *ImageFinder {
	return &ImageFinder{client: &http.Client{Timeout: 20 * time.Second}}
}

const minImageSide = 300

var vqdRe = regexp.MustCompile(`vqd="([^"]+)"`)

// Find returns up to max image URLs for the given product and color names.
func (f *ImageFinder) Find(ctx context.Context, product, color string, max int) ([]string, error) {
	if max <= 0 {
		max = 6
	}
	if max > 20 {
		max = 20
	}
	query := strings.TrimSpace(product)
	if color != "" {
		query += " " + strings.TrimSpace(color)
	}
	query += " smartphone"

	urls, err := f.duckDuckGo(ctx, query, max)
	if err == nil && len(urls) > 0 {
		log.Info().Str("query", query).Int("found", len(urls)).Msg("image suggestions from duckduckgo")
		return urls, nil
	}
	log.Warn().Err(err).Str("query", query).Msg("duckduckgo failed, trying google images")

	urls, err = f.googleImages(ctx, query, max)
	if err == nil && len(urls) > 0 {
		log.Info().Str("query", query).Int("found", len(urls)).Msg("image suggestions from google")
		return urls, nil
	}
	return nil, fmt.Errorf("no images found: %w", err)
}

func (f *ImageFinder) get(ctx context.Context, rawURL, referer string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status code: %d", resp.StatusCode)
	}
	return resp, nil
}

// duckDuckGo needs a vqd token from the HTML page before the JSON endpoint
// will answer.
func (f *ImageFinder) duckDuckGo(ctx context.Context, query string, max int) ([]string, error) {
	pageURL := fmt.Sprintf("https://duckduckgo.com/?q=%s&iax=images&ia=images", url.QueryEscape(query))
	resp, err := f.get(ctx, pageURL, "")
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	m := vqdRe.FindStringSubmatch(string(body))
	if len(m) < 2 {
		return nil, fmt.Errorf("vqd token not found")
	}

	jsURL := fmt.Sprintf("https://duckduckgo.com/i.js?q=%s&vqd=%s&o=json&p=1&s=0", url.QueryEscape(query), url.QueryEscape(m[1]))
	resp2, err := f.get(ctx, jsURL, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp2.Body.Close()

	var payload struct {
		Results []struct {
			Image     string `json:"image"`
			Thumbnail string `json:"thumbnail"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	var urls []string
	for _, r := range payload.Results {
		if r.Width < minImageSide || r.Height < minImageSide {
			continue
		}
		u := r.Image
		if u == "" {
			u = r.Thumbnail
		}
		if strings.HasPrefix(u, "http") {
			urls = append(urls, u)
			if len(urls) >= max {
				break
			}
		}
	}
	return urls, nil
}

var googleSizeRe = regexp.MustCompile(`=w\d+-h\d+`)

func (f *ImageFinder) googleImages(ctx context.Context, query string, max int) ([]string, error) {
	searchURL := fmt.Sprintf("https://www.google.com/search?tbm=isch&q=%s&safe=active", url.QueryEscape(query))
	resp, err := f.get(ctx, searchURL, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find("img[data-src], img[src]").Each(func(_ int, sel *goquery.Selection) {
		if len(urls) >= max {
			return
		}
		u, ok := sel.Attr("data-src")
		if !ok || !strings.HasPrefix(u, "http") {
			u, ok = sel.Attr("src")
			if !ok || !strings.HasPrefix(u, "http") {
				return
			}
		}
		// Ask googleusercontent for a bigger rendition when the URL carries
		// explicit dimensions.
		if strings.Contains(u, "googleusercontent.com") {
			u = googleSizeRe.ReplaceAllString(u, "=w800-h600")
		}
		lower := strings.ToLower(u)
		if strings.Contains(lower, "logo") || strings.Contains(lower, "icon") || strings.Contains(u, "gstatic.com") {
			return
		}
		urls = append(urls, u)
	})
	return urls, nil
}
