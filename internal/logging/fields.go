// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldJobs       = "jobs"

	// Deck fields.
	FieldDeck    = "deck"
	FieldPage    = "page"
	FieldPages   = "pages"
	FieldSection = "section"
	FieldLevel   = "level"
	FieldKind    = "kind"

	// Directive fields.
	FieldDirective = "directive"
	FieldOption    = "option"
	FieldOptions   = "options"
	FieldArgs      = "args"
	FieldApp       = "app"
	FieldLanguage  = "language"

	// Frame driver fields.
	FieldURL   = "url"
	FieldFPS   = "fps"
	FieldScale = "scale"

	// Statistics fields.
	FieldDecksDiscovered = "decks_discovered"
	FieldDecksExported   = "decks_exported"
	FieldFilesWritten    = "files_written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
