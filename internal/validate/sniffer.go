package validate

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SniffOutcome classifies the result of content sniffing a 200 OK URL.
type SniffOutcome int

const (
	SniffOK       SniffOutcome = iota // page looks like real content
	SniffSoft404                      // 200 status but the body says "not found"
	SniffHard404                      // the sniffing GET itself returned 404
)

// notFoundPhrases is the reconciled phrase family for error-page titles and
// meta titles. Matching is case-insensitive substring.
var notFoundPhrases = []string{
	"404",
	"not found",
	"page does not exist",
	"page doesn't exist",
	"no longer available",
	"sorry",
	"error",
	"unavailable",
	"removed",
	"gone",
	"moved permanently",
	"something went wrong",
}

// strongBodyPhrases are explicit error sentences that mark a soft 404 when
// they appear in the opening body text, without needing title evidence.
var strongBodyPhrases = []string{
	"page you're looking for doesn't exist",
	"page you are looking for doesn't exist",
	"page you requested could not be found",
	"404 page not found",
	"404 not found",
	"not found on this server",
	"this page could not be found",
}

// bodyPrefixChars bounds how much body text the noindex and strong-phrase
// heuristics look at.
const bodyPrefixChars = 4096

// Sniffer detects soft 404s: pages that answer 200 OK but whose content is
// an error page. SPA routers and CMS catch-alls answer 200 for every route,
// so a transport-level check alone would falsely accept dead citations.
type Sniffer struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewSniffer creates a sniffer that reads at most maxBytes of each body
func NewSniffer(httpClient *http.Client, userAgent string, maxBytes int64) *Sniffer {
	if maxBytes <= 0 {
		maxBytes = 64 * 1024
	}
	return &Sniffer{
		httpClient: httpClient,
		userAgent:  userAgent,
		maxBytes:   maxBytes,
	}
}

// Sniff fetches a bounded prefix of the page at rawURL and classifies it.
// Fetch errors during sniffing yield SniffOK: the prober already classified
// the transport outcome and the URL must not be penalized twice.
func (s *Sniffer) Sniff(ctx context.Context, rawURL string) SniffOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return SniffOK
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return SniffOK
	}
	defer func() { _ = resp.Body.Close() }()

	// Some servers answer HEAD and GET differently; a literal 404 here is
	// a hard 404, not merely soft.
	if resp.StatusCode == http.StatusNotFound {
		return SniffHard404
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes))
	if err != nil {
		return SniffOK
	}

	if LooksLikeErrorPage(string(body)) {
		return SniffSoft404
	}
	return SniffOK
}

// LooksLikeErrorPage scans an HTML prefix for soft-404 evidence, in order
// of precedence: <title> phrases, og:/twitter: meta title phrases, robots
// noindex co-occurring with error language in the body prefix, and strong
// error sentences in the opening body text.
func LooksLikeErrorPage(htmlContent string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		// Unparseable HTML is not evidence of an error page
		return false
	}

	if title := doc.Find("head title").First().Text(); containsNotFoundPhrase(title) {
		return true
	}

	// Some error pages only set meta titles, not the HTML title
	for _, selector := range []string{
		"meta[property='og:title']",
		"meta[name='twitter:title']",
	} {
		if metaTitle, ok := doc.Find(selector).Attr("content"); ok && containsNotFoundPhrase(metaTitle) {
			return true
		}
	}

	bodyText := doc.Find("body").Text()
	if len(bodyText) > bodyPrefixChars {
		bodyText = bodyText[:bodyPrefixChars]
	}
	lowerBody := strings.ToLower(bodyText)

	// noindex alone is not evidence; it must co-occur with error language
	if robots, ok := doc.Find("meta[name='robots']").Attr("content"); ok {
		if strings.Contains(strings.ToLower(robots), "noindex") && hasErrorLanguage(lowerBody) {
			return true
		}
	}

	for _, phrase := range strongBodyPhrases {
		if strings.Contains(lowerBody, phrase) {
			return true
		}
	}

	return false
}

func containsNotFoundPhrase(text string) bool {
	lower := strings.ToLower(text)
	if lower == "" {
		return false
	}
	for _, phrase := range notFoundPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func hasErrorLanguage(lowerBody string) bool {
	for _, phrase := range []string{"404", "not found", "doesn't exist", "does not exist", "error"} {
		if strings.Contains(lowerBody, phrase) {
			return true
		}
	}
	return false
}
