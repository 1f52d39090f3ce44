package pdffill

import "errors"

// Error kinds surfaced by the engine. Anchor misses, out-of-page draws and
// font registration failures are recovered locally (the field is skipped or
// a fallback face is used); template and merge failures propagate.
var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrNoAnchorConfig    = errors.New("no anchor configuration for template")
	ErrAnchorNotFound    = errors.New("anchor not found")
	ErrInvalidCoordinate = errors.New("draw position outside page rectangle")
	ErrMergeFailed       = errors.New("overlay merge failed")
	ErrFontRegistration  = errors.New("signature font registration failed")
)
