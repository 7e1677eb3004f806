package ports

import (
	"context"
	"io"
	"time"

	"ArticleIngest/internal/domain"
)

// Transport fetches a URL and decodes the JSON body into dst. It reports
// false for any unusable response (network failure, non-2xx, non-JSON
// content, decode error) instead of returning an error; callers treat
// absence as "no data".
type Transport interface {
	FetchJSON(ctx context.Context, url string, dst any) bool
}

// Recorder accumulates pipeline outcomes across the process lifetime.
// Implementations must be safe for concurrent use within one batch.
type Recorder interface {
	Record(article domain.Article)
	RecordError(verr *domain.ValidationError)
	Display(w io.Writer)
}

// Processor runs one batch of descriptors through the ingestion pipeline.
type Processor interface {
	Process(ctx context.Context, descriptors []domain.Descriptor)
}

// Scheduler fires a job on a fixed cadence until stopped.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
