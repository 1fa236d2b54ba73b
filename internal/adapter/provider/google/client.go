package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

const providerName = "google"

// Client calls the Cloud Translation v2 API with a service account.
type Client struct {
	svc *translate.Service
	log *slog.Logger
}

// NewClient creates a Client authenticated with the service account JSON at
// credentialsFile. endpoint overrides the API base URL when set. Extra opts
// are appended last.
func NewClient(ctx context.Context, credentialsFile, endpoint string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	var all []option.ClientOption
	if credentialsFile != "" {
		all = append(all, option.WithCredentialsFile(credentialsFile))
	}
	if endpoint != "" {
		all = append(all, option.WithEndpoint(endpoint))
	}
	all = append(all, opts...)

	svc, err := translate.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("google: create translate service: %w", err)
	}

	return &Client{
		svc: svc,
		log: logger.With("adapter", "google"),
	}, nil
}

// Translate returns the translation of phrase. The phrase is sent as HTML so
// line break tags survive, and the reply may contain HTML entities.
func (c *Client) Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error) {
	c.log.DebugContext(ctx, "google request", slog.Int("bytes", len(phrase)))

	resp, err := c.svc.Translations.List([]string{phrase}, targetLang).
		Source(sourceLang).
		Format("html").
		Context(ctx).
		Do()
	if err != nil {
		trErr := &domain.TranslationError{Provider: providerName, Phrase: phrase, Reason: "request failed", Err: err}

		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			trErr.StatusCode = apiErr.Code
			trErr.Reason = "api error: " + apiErr.Message
		}
		c.log.ErrorContext(ctx, "google request failed", slog.String("error", err.Error()))
		return "", trErr
	}

	if resp == nil || len(resp.Translations) == 0 {
		return "", &domain.TranslationError{Provider: providerName, Phrase: phrase, Reason: "no translation in response"}
	}

	c.log.DebugContext(ctx, "google response", slog.Int("translations", len(resp.Translations)))
	return resp.Translations[0].TranslatedText, nil
}
