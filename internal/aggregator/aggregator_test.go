package aggregator

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ArticleIngest/internal/domain"
)

func TestConcurrentAppends(t *testing.T) {
	t.Parallel()

	agg := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			agg.Record(domain.Article{ID: id, PublicationDate: time.Now()})
		}(int64(i))
		go func() {
			defer wg.Done()
			agg.RecordError(&domain.ValidationError{
				Record: domain.RawRecord{"id": "x"},
				Err:    errors.New("boom"),
			})
		}()
	}
	wg.Wait()

	articles, errs := agg.Snapshot()
	if len(articles) != 50 {
		t.Fatalf("len(articles) = %d, want 50", len(articles))
	}
	if len(errs) != 50 {
		t.Fatalf("len(errors) = %d, want 50", len(errs))
	}
}

func TestDisplayRendersArticlesAndErrors(t *testing.T) {
	t.Parallel()

	agg := New()
	mod := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	agg.Record(domain.Article{
		ID:               42,
		URL:              "https://example.org/data/articles/42.json",
		PublicationDate:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		ModificationDate: &mod,
		Sections:         []domain.Section{{Type: "image"}},
	})
	agg.RecordError(&domain.ValidationError{
		Record: domain.RawRecord{"id": "7"},
		Err:    errors.New("no publication date"),
	})

	var buf bytes.Buffer
	agg.Display(&buf)
	out := buf.String()

	for _, want := range []string{
		"Valid Articles (1)",
		"Errors (1)",
		"42",
		"2024-01-01 10:00:00",
		"record 7: no publication date",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("display output missing %q:\n%s", want, out)
		}
	}
}

// A re-processed id is appended again: dedup lives in the poller's diff, not
// here.
func TestNoDedup(t *testing.T) {
	t.Parallel()

	agg := New()
	agg.Record(domain.Article{ID: 1})
	agg.Record(domain.Article{ID: 1})

	articles, _ := agg.Snapshot()
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
}
