// Package openlibrary checks submitted ISBN/title pairs against the
// OpenLibrary catalog. OpenLibrary's coverage is known to be incomplete, so
// the check is best-effort: only a confirmed record with a different title
// blocks a submission, everything else degrades to Unknown and the user's
// input is trusted.
package openlibrary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/toshobooks/tosho/pkg/config"
)

type Result string

const (
	ResultMatch    Result = "match"
	ResultMismatch Result = "mismatch"
	ResultUnknown  Result = "unknown"
)

// Verification is the outcome of a title check. RemoteTitle is only set when
// OpenLibrary returned a usable record.
type Verification struct {
	Result      Result
	RemoteTitle string
}

// Verifier is the capability the books service depends on. The HTTP client
// below is the real implementation; tests substitute a stub.
type Verifier interface {
	VerifyTitle(ctx context.Context, isbn, title string) Verification
}

type Client struct {
	baseURL      string
	coverBaseURL string
	httpClient   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:      cfg.OpenLibraryBaseURL,
		coverBaseURL: cfg.OpenLibraryCoverBaseURL,
		// The timeout bounds the whole lookup so a single add-book request
		// can never hang on OpenLibrary.
		httpClient: &http.Client{Timeout: cfg.OpenLibraryTimeout},
	}
}

type editionResponse struct {
	Title string `json:"title"`
}

// VerifyTitle fetches the OpenLibrary record for an ISBN and compares its
// title to the submitted one, case-insensitively and trimmed. A missing
// record (404), a record without a title, an unreachable service, or a
// malformed body all yield Unknown. One attempt, no retries.
func (c *Client) VerifyTitle(ctx context.Context, isbn, title string) Verification {
	log := logger.FromContext(ctx)

	endpoint := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, url.PathEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Warn("openlibrary request build failed", logger.Data{"isbn": isbn, "error": err.Error()})
		return Verification{Result: ResultUnknown}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("openlibrary unreachable", logger.Data{"isbn": isbn, "error": err.Error()})
		return Verification{Result: ResultUnknown}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Verification{Result: ResultUnknown}
	}

	var edition editionResponse
	if err := json.NewDecoder(resp.Body).Decode(&edition); err != nil {
		log.Warn("openlibrary malformed response", logger.Data{"isbn": isbn, "error": err.Error()})
		return Verification{Result: ResultUnknown}
	}

	if edition.Title == "" {
		return Verification{Result: ResultUnknown}
	}

	if strings.EqualFold(strings.TrimSpace(edition.Title), strings.TrimSpace(title)) {
		return Verification{Result: ResultMatch, RemoteTitle: edition.Title}
	}
	return Verification{Result: ResultMismatch, RemoteTitle: edition.Title}
}

// CoverURL returns the OpenLibrary medium-size cover image URL for an ISBN.
func (c *Client) CoverURL(isbn string) string {
	return fmt.Sprintf("%s/b/isbn/%s-M.jpg", c.coverBaseURL, url.PathEscape(isbn))
}
