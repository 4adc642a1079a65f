package shell

import (
	"errors"
)

// ErrTransientFailure is returned when a command could not be applied because
// concurrent writers kept invalidating its decision until all retries were used up.
// It is never a business rejection, the caller may simply try again.
var ErrTransientFailure = errors.New("transient failure, please retry")
