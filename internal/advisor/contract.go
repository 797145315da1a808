package advisor

import (
	"errors"
	"log"

	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region errors

// ErrRecordMissing is returned by a suggestion's Patch when the accessor
// slot for its variant is empty. The engine recovers by falling back to
// remove+add; it is never surfaced to callers as a failure.
var ErrRecordMissing = errors.New("no behavior record attached for suggestion variant")

// #endregion errors

// #region contract

// Identity is the key that decides whether two suggestions are the same
// behavior: same variant, equal key fields. Identities are cheap values;
// the schema generator derives one identity type per schema.
type Identity interface {
	comparable

	// Detach schedules removal of the behavior record belonging to this
	// identity's variant.
	Detach(cmd world.EntityCommands)

	// String renders the identity for diagnostics and the decision journal.
	String() string
}

// Suggestion is one candidate behavior offered for a single cycle. K is the
// schema's identity type and A its record accessor. Implementations come
// from the advisorgen generator, or are written by hand for small schemas.
type Suggestion[K Identity, A any] interface {
	// Identity projects the suggestion onto its variant tag and key fields.
	Identity() K

	// Attach schedules insertion of a behavior record populated from all of
	// the suggestion's fields. This is the only point at which state-role
	// fields are initialized.
	Attach(cmd world.EntityCommands)

	// Patch copies the suggestion's input-role fields into the record
	// already attached for its variant, leaving key and state fields
	// untouched. Returns ErrRecordMissing when the accessor slot is empty.
	Patch(acc A) error
}

// #endregion contract

// #region warn-hook

var warnf = log.Printf

// SetWarnFunc redirects the engine's recoverable-warning output. Passing
// nil restores the default (stdlib log).
func SetWarnFunc(f func(format string, args ...any)) {
	if f == nil {
		warnf = log.Printf
		return
	}
	warnf = f
}

// #endregion warn-hook
