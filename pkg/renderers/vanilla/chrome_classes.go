package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "optgroup-form"
	ClassField   ChromeClass = "optgroup-field"
	ClassActions ChromeClass = "optgroup-actions"
	ClassErrors  ChromeClass = "optgroup-errors"
)

// Default*Class values are applied when no override is configured.
const (
	DefaultFormClass    = string(ClassForm)
	DefaultFieldClass   = string(ClassField)
	DefaultActionsClass = string(ClassActions)
	DefaultErrorsClass  = string(ClassErrors)
)
