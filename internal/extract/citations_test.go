package extract

import "testing"

const articleHTML = `<html><body>
<h1>Cloud Spending Trends</h1>
<p>Spending rose 20% in 2025 [1], driven by AI workloads [2].</p>
<h2>Sources</h2>
<ol>
<li><a href="https://example.com/report">Cloud Spend Report</a></li>
<li><a href="https://research.example.org/ai">AI Workload Study</a></li>
<li>Bare entry without a link</li>
</ol>
</body></html>`

func TestCitations(t *testing.T) {
	entries, err := Citations(articleHTML)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []Entry{
		{Seq: 1, URL: "https://example.com/report", Title: "Cloud Spend Report"},
		{Seq: 2, URL: "https://research.example.org/ai", Title: "AI Workload Study"},
		{Seq: 3, URL: "", Title: "Bare entry without a link"},
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestCitations_ReferencesHeading(t *testing.T) {
	htmlContent := `<h3>References</h3><ul><li><a href="https://example.com/a">A</a></li></ul>`

	entries, err := Citations(htmlContent)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if len(entries) != 1 || entries[0].URL != "https://example.com/a" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestCitations_NoSourcesSection(t *testing.T) {
	entries, err := Citations(`<h1>Title</h1><p>No sources here.</p><ul><li>nav item</li></ul>`)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %+v", entries)
	}
}

func TestCitations_HeadingWithoutList(t *testing.T) {
	htmlContent := `<h2>Sources</h2><h2>Appendix</h2><ol><li><a href="https://example.com">x</a></li></ol>`

	entries, err := Citations(htmlContent)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if entries != nil {
		t.Errorf("list after the next heading must not count, got %+v", entries)
	}
}

func TestMarkers(t *testing.T) {
	got := Markers("Growth [2] was strong [1], see [2] again, and [10].")
	want := []int{2, 1, 10}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("marker %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMarkers_None(t *testing.T) {
	if got := Markers("No markers in this text."); got != nil {
		t.Errorf("got %v", got)
	}
}

func TestStripMarkers(t *testing.T) {
	text := "Spending rose [1] while churn fell [2]. Both trends held [3]."

	got := StripMarkers(text, map[int]bool{2: true})
	want := "Spending rose [1] while churn fell. Both trends held [3]."

	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStripMarkers_KeepsNumbering(t *testing.T) {
	text := "a [1] b [2] c [3]"

	got := StripMarkers(text, map[int]bool{1: true})

	// Surviving markers keep their original numbers
	if got != "a b [2] c [3]" {
		t.Errorf("got %q", got)
	}
}

func TestStripMarkers_NothingDropped(t *testing.T) {
	text := "untouched [1] text [2]"
	if got := StripMarkers(text, nil); got != text {
		t.Errorf("got %q", got)
	}
}
