package aggregator

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/mattn/go-runewidth"

	"ArticleIngest/internal/domain"
	"ArticleIngest/internal/ports"
)

const timeLayout = "2006-01-02 15:04:05"

// Aggregator accumulates valid articles and validation errors for the life
// of the process. Appends are mutex-guarded because validations within one
// batch may run concurrently. Append-only and no dedup: re-processing an id
// appends again, the poller's diff is what prevents that.
type Aggregator struct {
	mu       sync.Mutex
	articles []domain.Article
	errors   []*domain.ValidationError
}

var _ ports.Recorder = (*Aggregator)(nil)

// New builds an empty aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Record appends a valid article.
func (a *Aggregator) Record(article domain.Article) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.articles = append(a.articles, article)
}

// RecordError appends a terminal validation error.
func (a *Aggregator) RecordError(verr *domain.ValidationError) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errors = append(a.errors, verr)
}

// Snapshot returns copies of both accumulators.
func (a *Aggregator) Snapshot() ([]domain.Article, []*domain.ValidationError) {
	a.mu.Lock()
	defer a.mu.Unlock()
	articles := make([]domain.Article, len(a.articles))
	copy(articles, a.articles)
	errs := make([]*domain.ValidationError, len(a.errors))
	copy(errs, a.errors)
	return articles, errs
}

// Display renders every article and error accumulated so far as aligned
// tables on w.
func (a *Aggregator) Display(w io.Writer) {
	articles, errs := a.Snapshot()

	fmt.Fprintf(w, "\n==== Valid Articles (%d) ====\n", len(articles))
	if len(articles) > 0 {
		writeTable(w, articleRows(articles))
	}

	fmt.Fprintf(w, "\n==== Errors (%d) ====\n", len(errs))
	for _, verr := range errs {
		fmt.Fprintf(w, "- %v\n", verr)
	}
	fmt.Fprintln(w)
}

func articleRows(articles []domain.Article) [][]string {
	rows := [][]string{{"ID", "PUBLISHED", "MODIFIED", "SECTIONS", "URL"}}
	for _, art := range articles {
		mod := "-"
		if art.ModificationDate != nil {
			mod = art.ModificationDate.Format(timeLayout)
		}
		rows = append(rows, []string{
			strconv.FormatInt(art.ID, 10),
			art.PublicationDate.Format(timeLayout),
			mod,
			strconv.Itoa(len(art.Sections)),
			art.URL,
		})
	}
	return rows
}

// writeTable pads every cell to its column width so the dump stays readable
// with wide runes in urls or pass-through fields.
func writeTable(w io.Writer, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, runewidth.FillRight(cell, widths[i]))
		}
		fmt.Fprintln(w)
	}
}
