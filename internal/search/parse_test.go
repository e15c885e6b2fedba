package search

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		method ParseMethod
		url    string
		title  string
	}{
		{
			"fenced json",
			"Here is the source:\n```json\n{\"url\": \"https://example.com/report\", \"title\": \"Annual Report\", \"verified\": true}\n```\n",
			ParseStructuredJSON,
			"https://example.com/report",
			"Annual Report",
		},
		{
			"fenced without language tag",
			"```\n{\"url\": \"https://example.com/a\", \"title\": \"A\"}\n```",
			ParseStructuredJSON,
			"https://example.com/a",
			"A",
		},
		{
			"raw json in prose",
			`I found this: {"url": "https://example.com/study", "title": "Study", "verified": false} hope it helps`,
			ParseRawJSON,
			"https://example.com/study",
			"Study",
		},
		{
			"bare url in prose",
			"The best source I could find is https://example.com/data-2025. It covers the topic.",
			ParseRegexURL,
			"https://example.com/data-2025",
			"",
		},
		{
			"url with trailing punctuation stripped",
			"See https://example.com/page.",
			ParseRegexURL,
			"https://example.com/page",
			"",
		},
		{
			"empty url field falls through to regex",
			`{"url": "", "title": "nothing"} but maybe https://example.com/alt works`,
			ParseRegexURL,
			"https://example.com/alt",
			"",
		},
		{
			"no candidate",
			"I could not find any source for this topic.",
			ParseNoMatch,
			"",
			"",
		},
		{
			"empty response",
			"",
			ParseNoMatch,
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if got.Method != tt.method {
				t.Fatalf("method = %s, want %s", got.Method, tt.method)
			}
			if got.URL != tt.url {
				t.Errorf("url = %q, want %q", got.URL, tt.url)
			}
			if got.Title != tt.title {
				t.Errorf("title = %q, want %q", got.Title, tt.title)
			}
		})
	}
}

func TestParse_VerifiedFlag(t *testing.T) {
	got := Parse(`{"url": "https://example.com", "verified": true}`)
	if got.Method != ParseRawJSON || !got.Verified {
		t.Errorf("got %+v", got)
	}
}

func TestParseMethod_String(t *testing.T) {
	if ParseStructuredJSON.String() != "structured_json" {
		t.Errorf("got %s", ParseStructuredJSON)
	}
	if ParseNoMatch.String() != "no_match" {
		t.Errorf("got %s", ParseNoMatch)
	}
}
