package bing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
	"github.com/heartmarshall/wordnet-translator/pkg/ctxutil"
)

// DefaultEndpoint is the global Translator v3 endpoint.
const DefaultEndpoint = "https://api.cognitive.microsofttranslator.com"

const (
	providerName         = "bing"
	translatePath        = "/translate"
	dictionaryLookupPath = "/dictionary/lookup"
	apiVersion           = "3.0"
	requestTimeout       = 60 * time.Second
)

// Client calls the Microsoft Translator text API.
type Client struct {
	endpoint   string
	headers    map[string]string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client sending headers with every request. An empty
// endpoint selects DefaultEndpoint.
func NewClient(endpoint string, headers map[string]string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		headers:    headers,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        logger.With("adapter", "bing"),
	}
}

// NewClientFromKeyFile reads the request headers from keyFile and creates a Client.
func NewClientFromKeyFile(keyFile, endpoint string, logger *slog.Logger) (*Client, error) {
	headers, err := LoadHeaders(keyFile)
	if err != nil {
		return nil, err
	}
	return NewClient(endpoint, headers, logger), nil
}

// LoadHeaders reads a JSON object of header names to values, e.g.
// {"Ocp-Apim-Subscription-Key": "...", "Ocp-Apim-Subscription-Region": "westeurope"}.
func LoadHeaders(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bing: read key file: %w", err)
	}
	var headers map[string]string
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, fmt.Errorf("bing: decode key file %s: %w", path, err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("bing: key file %s has no headers", path)
	}
	return headers, nil
}

// Translate returns the first translation of phrase.
func (c *Client) Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error) {
	items, err := c.request(ctx, translatePath, phrase, sourceLang, targetLang)
	if err != nil {
		return "", err
	}

	for _, item := range items {
		for _, tr := range item.Translations {
			return tr.Text, nil
		}
	}
	return "", &domain.TranslationError{Provider: providerName, Phrase: phrase, Reason: "no translation in response"}
}

// DictionaryLookup returns the normalized targets of the first result item.
// A word the dictionary does not know yields an empty slice.
func (c *Client) DictionaryLookup(ctx context.Context, word, sourceLang, targetLang string) ([]string, error) {
	items, err := c.request(ctx, dictionaryLookupPath, word, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &domain.TranslationError{Provider: providerName, Phrase: word, Reason: "empty dictionary response"}
	}

	candidates := make([]string, 0, len(items[0].Translations))
	for _, tr := range items[0].Translations {
		candidates = append(candidates, tr.NormalizedTarget)
	}
	return candidates, nil
}

func (c *Client) request(ctx context.Context, path, phrase, sourceLang, targetLang string) ([]apiItem, error) {
	payload, err := json.Marshal([]apiRequestItem{{Text: phrase}})
	if err != nil {
		return nil, fmt.Errorf("bing: encode body: %w", err)
	}

	query := url.Values{}
	query.Set("api-version", apiVersion)
	query.Set("from", sourceLang)
	query.Set("to", targetLang)
	reqURL := c.endpoint + path + "?" + query.Encode()

	attrs := []any{slog.String("path", path), slog.Int("bytes", len(phrase))}
	if runID, ok := ctxutil.RunIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String("run_id", runID.String()))
	}
	c.log.DebugContext(ctx, "bing request", attrs...)

	resp, err := c.do(ctx, reqURL, payload)
	if err != nil {
		c.log.ErrorContext(ctx, "bing request failed", slog.String("path", path), slog.String("error", err.Error()))
		return nil, &domain.TranslationError{Provider: providerName, Phrase: phrase, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TranslationError{Provider: providerName, Phrase: phrase, Reason: "read body", StatusCode: resp.StatusCode, Err: err}
	}

	if !json.Valid(body) {
		return nil, &domain.TranslationError{
			Provider: providerName, Phrase: phrase, StatusCode: resp.StatusCode,
			Reason: "cannot parse the response as json",
		}
	}

	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != nil {
		return nil, &domain.TranslationError{
			Provider: providerName, Phrase: phrase, StatusCode: resp.StatusCode,
			Reason: fmt.Sprintf("api error %d: %s", apiErr.Error.Code, apiErr.Error.Message),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.TranslationError{
			Provider: providerName, Phrase: phrase, StatusCode: resp.StatusCode,
			Reason: "unexpected status",
		}
	}

	var items []apiItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &domain.TranslationError{Provider: providerName, Phrase: phrase, Reason: "decode json", Err: err}
	}

	c.log.DebugContext(ctx, "bing response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("items", len(items)),
	)
	return items, nil
}

// do posts payload once. Failures are returned to the caller unchanged.
func (c *Client) do(ctx context.Context, reqURL string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-ClientTraceId", uuid.New().String())

	return c.httpClient.Do(req)
}
