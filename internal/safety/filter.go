// Package safety screens raw user input for gibberish and profanity before
// any further processing. Both checks delegate to external classifier
// services and fail open: a classifier outage never blocks a request.
package safety

import (
	"context"
	"log"
)

// gibberishThreshold is the minimum classifier confidence required to flag
// input as gibberish.
const gibberishThreshold = 0.8

// labelClean is the gibberish classifier's label for well-formed text.
const labelClean = "clean"

// GibberishClassifier labels text with a confidence score in [0, 1].
type GibberishClassifier interface {
	Classify(ctx context.Context, text string) (label string, score float64, err error)
}

// ProfanityClassifier reports whether text contains profane language.
type ProfanityClassifier interface {
	Check(ctx context.Context, text string) (bool, error)
}

// Result holds the outcome of one safety screening.
type Result struct {
	IsGibberish bool
	IsProfane   bool
}

// Filter runs both safety checks against their boundary services.
type Filter struct {
	gibberish GibberishClassifier
	profanity ProfanityClassifier
}

// NewFilter creates a filter over the given classifiers. Either classifier
// may be nil, in which case that check always passes.
func NewFilter(gibberish GibberishClassifier, profanity ProfanityClassifier) *Filter {
	return &Filter{gibberish: gibberish, profanity: profanity}
}

// Classify screens text and returns both flags. Classifier failures are
// logged and treated as "not flagged"; this method never returns an error.
func (f *Filter) Classify(ctx context.Context, text string) Result {
	var result Result

	if f.gibberish != nil {
		label, score, err := f.gibberish.Classify(ctx, text)
		if err != nil {
			log.Printf("safety: gibberish classifier failed, treating as clean: %v", err)
		} else if score >= gibberishThreshold && label != labelClean {
			result.IsGibberish = true
		}
	}

	if f.profanity != nil {
		profane, err := f.profanity.Check(ctx, text)
		if err != nil {
			log.Printf("safety: profanity check failed, treating as clean: %v", err)
		} else {
			result.IsProfane = profane
		}
	}

	return result
}
