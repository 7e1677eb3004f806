package normalizer

import (
	"regexp"
	"time"

	"ArticleIngest/internal/domain"
)

// Source date layouts. The publication date uses semicolons between the time
// parts; the modification date uses colons. Both are strict.
const (
	pubDateLayout = "2006-01-02-15;04;05"
	modDateLayout = "2006-01-02-15:04:05"
)

var tagExpr = regexp.MustCompile(`<.+?>`)

// Normalizer reshapes a raw article record into canonical form: parses the
// two source date strings, strips markup from section text, and splices
// fetched media items onto the section list. Pure, no I/O, never fails:
// missing or malformed optional fields degrade to defaults.
type Normalizer struct {
	now func() time.Time
}

// New creates a normalizer using the wall clock.
func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewWithClock creates a normalizer with an injected clock.
func NewWithClock(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize returns a canonicalized copy of raw with the paired media items
// appended to its section list. The input record is not mutated.
func (n *Normalizer) Normalize(raw domain.RawRecord, media []any) domain.RawRecord {
	rec := raw.Clone()
	n.cleanDates(rec)

	if v, present := rec[domain.FieldSections]; present && v != nil {
		sections, ok := v.([]any)
		if !ok {
			// Malformed sections value passes through for the validator to judge.
			return rec
		}
		rec[domain.FieldSections] = append(stripSectionTags(sections), media...)
	} else if len(media) > 0 {
		rec[domain.FieldSections] = append([]any{}, media...)
	}

	return rec
}

// cleanDates derives publication_date and modification_date from the source
// pub_date/mod_date strings and drops the originals. The guard for the
// modification date is keyed on pub_date: without a pub_date the
// modification date stays absent even when mod_date was sent.
func (n *Normalizer) cleanDates(rec domain.RawRecord) {
	pubRaw, hasPub := stringField(rec, domain.FieldPubDate)
	modRaw, _ := stringField(rec, domain.FieldModDate)
	delete(rec, domain.FieldPubDate)
	delete(rec, domain.FieldModDate)

	var pub, mod any
	if hasPub {
		if t, err := time.Parse(pubDateLayout, pubRaw); err == nil {
			pub = t
		}
		if t, err := time.Parse(modDateLayout, modRaw); err == nil {
			mod = t
		}
	}

	if pub == nil {
		pub = n.now()
	}
	rec[domain.FieldPublicationDate] = pub
	rec[domain.FieldModificationDate] = mod
}

// StripTags removes markup spans from text using a non-greedy match of the
// shortest tag, so "<b>hi</b> there" becomes "hi there". Idempotent.
func StripTags(text string) string {
	return tagExpr.ReplaceAllString(text, "")
}

func stripSectionTags(sections []any) []any {
	out := make([]any, 0, len(sections))
	for _, s := range sections {
		section, ok := s.(map[string]any)
		if !ok {
			out = append(out, s)
			continue
		}
		text, ok := section["text"].(string)
		if !ok {
			out = append(out, s)
			continue
		}
		clean := make(map[string]any, len(section))
		for k, v := range section {
			clean[k] = v
		}
		clean["text"] = StripTags(text)
		out = append(out, clean)
	}
	return out
}

func stringField(rec domain.RawRecord, key string) (string, bool) {
	v, present := rec[key]
	if !present || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
