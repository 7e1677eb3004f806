package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ArticleIngest/internal/domain"
	"ArticleIngest/internal/normalizer"
	"ArticleIngest/internal/ports"
	"ArticleIngest/internal/validator"
)

// PipelineDeps wires all collaborators into the batch orchestrator.
type PipelineDeps struct {
	Transport  ports.Transport
	Normalizer *normalizer.Normalizer
	Validator  *validator.Validator
	BaseURL    string
	Logger     *slog.Logger
}

// Pipeline processes one batch of descriptors: it fans out the article and
// media fetches for the whole batch at once, fans them back in, pairs the
// responses positionally, and pushes each pair through normalization and
// validation. A failed fetch or failed validation of one item never affects
// the others.
type Pipeline struct {
	transport  ports.Transport
	normalizer *normalizer.Normalizer
	validator  *validator.Validator
	baseURL    string
	logger     *slog.Logger
}

var _ ports.Processor = (*Pipeline)(nil)

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		transport:  deps.Transport,
		normalizer: deps.Normalizer,
		validator:  deps.Validator,
		baseURL:    strings.TrimSuffix(deps.BaseURL, "/"),
		logger:     deps.Logger,
	}
}

// ArticleURL derives the detail endpoint for a descriptor id.
func (p *Pipeline) ArticleURL(id string) string {
	return fmt.Sprintf("%s/data/articles/%s.json", p.baseURL, id)
}

// MediaURL derives the media endpoint for a descriptor id.
func (p *Pipeline) MediaURL(id string) string {
	return fmt.Sprintf("%s/data/media/%s.json", p.baseURL, id)
}

// Process ingests the given descriptors. Fetch results are collected into
// index-aligned slices so the n-th article response pairs with the n-th media
// response in submission order.
func (p *Pipeline) Process(ctx context.Context, descriptors []domain.Descriptor) {
	n := len(descriptors)
	if n == 0 {
		return
	}

	logger := p.logger
	if logger != nil {
		logger = logger.With("batch", uuid.NewString())
		logger.Debug("batch started", "items", n)
	}

	details := make([]domain.RawRecord, n)
	detailOK := make([]bool, n)
	media := make([][]any, n)
	mediaOK := make([]bool, n)

	var wg sync.WaitGroup
	for i, d := range descriptors {
		wg.Add(2)
		go func(i int, id string) {
			defer wg.Done()
			var rec domain.RawRecord
			if p.transport.FetchJSON(ctx, p.ArticleURL(id), &rec) && rec != nil {
				details[i], detailOK[i] = rec, true
			}
		}(i, d.ID)
		go func(i int, id string) {
			defer wg.Done()
			var items []any
			if p.transport.FetchJSON(ctx, p.MediaURL(id), &items) {
				media[i], mediaOK[i] = items, true
			}
		}(i, d.ID)
	}
	wg.Wait()

	processed := 0
	for i, d := range descriptors {
		if !detailOK[i] || !mediaOK[i] {
			if logger != nil {
				logger.Debug("skipping item without data", "id", d.ID,
					"article", detailOK[i], "media", mediaOK[i])
			}
			continue
		}

		rec := details[i]
		rec[domain.FieldURL] = p.ArticleURL(d.ID)

		normalized := p.normalizer.Normalize(rec, media[i])
		if _, ok := p.validator.Validate(normalized); ok {
			processed++
		}
	}

	if logger != nil {
		logger.Debug("batch finished", "valid", processed, "items", n)
	}
}
