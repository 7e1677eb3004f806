package validator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ArticleIngest/internal/domain"
	"ArticleIngest/internal/ports"
)

// Construction errors.
var (
	ErrBadID               = errors.New("id is not an identifier")
	ErrBadURL              = errors.New("url is not a string")
	ErrNoPublicationDate   = errors.New("missing publication date")
	ErrBadModificationDate = errors.New("modification date is not a timestamp")
	ErrBadSections         = errors.New("sections is not a list")
	ErrBadSection          = errors.New("section is not an object")
	ErrBadSectionText      = errors.New("section text is not a string")
)

// Validator constructs typed articles from normalized records. A record that
// fails construction gets one more attempt with its sections cleared, keeping
// the rest of the article at the cost of its content; only when that also
// fails is a terminal ValidationError recorded. Outcomes land in the injected
// recorder, which owns synchronization.
type Validator struct {
	recorder ports.Recorder
	logger   *slog.Logger
}

// New wires the shared result recorder.
func New(recorder ports.Recorder, logger *slog.Logger) *Validator {
	return &Validator{recorder: recorder, logger: logger}
}

// Validate builds an Article from rec and records the outcome. The returned
// flag reports whether a valid article (possibly degraded) was produced.
func (v *Validator) Validate(rec domain.RawRecord) (domain.Article, bool) {
	article, err := build(rec)
	if err == nil {
		v.recorder.Record(article)
		return article, true
	}

	degraded := rec.Clone()
	degraded[domain.FieldSections] = nil
	if retry, retryErr := build(degraded); retryErr == nil {
		v.debug("validated without sections", "id", retry.ID, "cause", err)
		v.recorder.Record(retry)
		return retry, true
	}

	// The retry failed too; the error kept is the original one.
	verr := &domain.ValidationError{Record: rec, Err: err}
	v.debug("validation failed", "error", verr)
	v.recorder.RecordError(verr)
	return domain.Article{}, false
}

func build(rec domain.RawRecord) (domain.Article, error) {
	id, ok := domain.CoerceID(rec[domain.FieldID])
	if !ok {
		return domain.Article{}, fmt.Errorf("%w: %v", ErrBadID, rec[domain.FieldID])
	}

	article := domain.Article{ID: id}

	if v, present := rec[domain.FieldURL]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return domain.Article{}, fmt.Errorf("%w: %v", ErrBadURL, v)
		}
		article.URL = s
	}

	pub, ok := rec[domain.FieldPublicationDate].(time.Time)
	if !ok {
		return domain.Article{}, ErrNoPublicationDate
	}
	article.PublicationDate = pub

	if v := rec[domain.FieldModificationDate]; v != nil {
		mod, ok := v.(time.Time)
		if !ok {
			return domain.Article{}, fmt.Errorf("%w: %v", ErrBadModificationDate, v)
		}
		article.ModificationDate = &mod
	}

	sections, err := buildSections(rec[domain.FieldSections])
	if err != nil {
		return domain.Article{}, err
	}
	article.Sections = sections

	article.Extra = passThrough(rec)
	return article, nil
}

func buildSections(v any) ([]domain.Section, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrBadSections, v)
	}

	sections := make([]domain.Section, 0, len(list))
	for i, item := range list {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w at index %d", ErrBadSection, i)
		}

		var section domain.Section
		for k, val := range fields {
			switch k {
			case "type":
				if s, ok := val.(string); ok {
					section.Type = s
				}
			case "text":
				if val == nil {
					continue
				}
				s, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("%w at index %d", ErrBadSectionText, i)
				}
				section.Text = &s
			default:
				if section.Attrs == nil {
					section.Attrs = make(map[string]any)
				}
				section.Attrs[k] = val
			}
		}
		sections = append(sections, section)
	}

	return sections, nil
}

func passThrough(rec domain.RawRecord) map[string]any {
	var extra map[string]any
	for k, v := range rec {
		switch k {
		case domain.FieldID, domain.FieldURL, domain.FieldPublicationDate,
			domain.FieldModificationDate, domain.FieldSections:
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra
}

func (v *Validator) debug(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}
