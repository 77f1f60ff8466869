package runner

// DeckOutcome is the result of exporting one deck.
type DeckOutcome struct {
	// Path is the deck file.
	Path string

	// Pages is the number of slides in the deck.
	Pages int

	// Files lists the images written, in order.
	Files []string

	// Error is set if the deck could not be loaded or exported.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	DecksDiscovered int
	DecksExported   int
	DecksErrored    int
	PagesRendered   int
	FilesWritten    int
}

// Result is the overall runner result.
type Result struct {
	// Decks are ordered by path.
	Decks []DeckOutcome

	Stats Stats
}

// HasFailures reports whether any deck failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DecksErrored > 0
}

// Errors returns the per-deck errors in deck order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, d := range r.Decks {
		if d.Error != nil {
			errs = append(errs, d.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome DeckOutcome) {
	r.Decks = append(r.Decks, outcome)

	// A failed deck may still have written some pages.
	r.Stats.FilesWritten += len(outcome.Files)

	if outcome.Error != nil {
		r.Stats.DecksErrored++
		return
	}

	r.Stats.DecksExported++
	r.Stats.PagesRendered += outcome.Pages
}
