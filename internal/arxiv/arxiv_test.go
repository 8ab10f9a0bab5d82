package arxiv

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <totalResults xmlns="http://a9.com/-/spec/opensearch/1.1/">42</totalResults>
  <entry>
    <id>http://arxiv.org/abs/2301.00001v1</id>
    <title>Attention Is
       Still All You Need</title>
    <summary>
      We revisit attention mechanisms.
    </summary>
    <published>2023-01-01T12:00:00Z</published>
    <author><name>Jane Smith</name></author>
    <author><name>John Doe</name></author>
    <link href="http://arxiv.org/abs/2301.00001v1" type="text/html"/>
    <link href="http://arxiv.org/pdf/2301.00001v1" type="application/pdf"/>
  </entry>
</feed>`

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func TestSearch(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("search_query"); got != "all:attention" {
			t.Errorf("search_query = %q", got)
		}
		if got := q.Get("max_results"); got != "3" {
			t.Errorf("max_results = %q", got)
		}
		if got := q.Get("sortBy"); got != "submittedDate" {
			t.Errorf("sortBy = %q", got)
		}
		w.Write([]byte(sampleFeed))
	})

	result, err := c.Search(context.Background(), "attention", 3)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}

	if result.Total != 1 || len(result.Papers) != 1 {
		t.Fatalf("got %d papers, want 1", len(result.Papers))
	}

	p := result.Papers[0]
	if p.Title != "Attention Is Still All You Need" {
		t.Errorf("Title = %q, want whitespace collapsed", p.Title)
	}
	if p.Summary != "We revisit attention mechanisms." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "Jane Smith" {
		t.Errorf("Authors = %v", p.Authors)
	}
	if p.PDFURL != "http://arxiv.org/pdf/2301.00001v1" {
		t.Errorf("PDFURL = %q", p.PDFURL)
	}
	if p.Published.Year() != 2023 {
		t.Errorf("Published = %v", p.Published)
	}
}

func TestSearchValidation(t *testing.T) {
	c := NewClient()

	if _, err := c.Search(context.Background(), "  ", 2); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Search(empty) error = %v, want ErrEmptyQuery", err)
	}
	if _, err := c.Search(context.Background(), "q", 11); !errors.Is(err, ErrBadLimit) {
		t.Errorf("Search(limit 11) error = %v, want ErrBadLimit", err)
	}
	if _, err := c.Search(context.Background(), "q", -1); !errors.Is(err, ErrBadLimit) {
		t.Errorf("Search(limit -1) error = %v, want ErrBadLimit", err)
	}
}

func TestSearchServerError(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := c.Search(context.Background(), "q", 2); err == nil {
		t.Error("Search() succeeded on 503 response")
	}
}

func TestSearchEmptyFeed(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	})

	result, err := c.Search(context.Background(), "nothing matches this", 2)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if result.Total != 0 || len(result.Papers) != 0 {
		t.Errorf("got %d papers, want 0", len(result.Papers))
	}
}
