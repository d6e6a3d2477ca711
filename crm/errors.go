// ABOUTME: Error taxonomy for the CRM core
// ABOUTME: Sentinel errors checked with errors.Is; warnings are result values, not errors
package crm

import "errors"

var (
	// ErrNotFound covers both genuinely absent records and records that exist
	// but are privacy-hidden from a locked caller. The two cases are never
	// distinguishable from the outside.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input, e.g. a contact name with fewer than
	// two words or a missing required argument.
	ErrValidation = errors.New("validation failed")

	// ErrReference marks a participant id that does not resolve to any contact.
	ErrReference = errors.New("unknown contact reference")

	// ErrKeyMismatch marks a privacy key change attempted with a wrong current key.
	ErrKeyMismatch = errors.New("current privacy key does not match")
)
