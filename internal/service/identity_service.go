package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"demo-credit/internal/core/ports"

	"github.com/rs/zerolog"
)

// karmaNotFoundMessage is the only lookup answer that lets an identity register.
const karmaNotFoundMessage = "Identity not found in karma ecosystem"

// maxKarmaResponseBytes caps how much of the lookup body is read.
const maxKarmaResponseBytes = 1 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type karmaResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// KarmaVerifier checks emails against the Lendsqr Adjutor karma blacklist.
type KarmaVerifier struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewKarmaVerifier creates a verifier calling GET {baseURL}/verification/karma/{email}.
func NewKarmaVerifier(baseURL, apiKey string, httpClient HTTPClient, log zerolog.Logger) *KarmaVerifier {
	return &KarmaVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
	}
}

// Verify returns true only when the karma ecosystem has no record of email.
func (v *KarmaVerifier) Verify(ctx context.Context, email string) (bool, error) {
	endpoint := fmt.Sprintf("%s/verification/karma/%s", v.baseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build karma request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("karma lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return false, fmt.Errorf("karma lookup: unexpected status %d", resp.StatusCode)
	}

	var body karmaResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxKarmaResponseBytes)).Decode(&body); err != nil {
		return false, fmt.Errorf("decode karma response: %w", err)
	}

	allowed := body.Message == karmaNotFoundMessage
	if !allowed {
		v.log.Warn().
			Int("status", resp.StatusCode).
			Str("karma_message", body.Message).
			Msg("identity rejected by karma lookup")
	}
	return allowed, nil
}

// NoopVerifier allows every identity. Used when the karma lookup is disabled.
type NoopVerifier struct{}

// Verify always allows.
func (NoopVerifier) Verify(context.Context, string) (bool, error) {
	return true, nil
}

var (
	_ ports.IdentityVerifier = (*KarmaVerifier)(nil)
	_ ports.IdentityVerifier = NoopVerifier{}
)
