package resolve

import (
	"errors"
	"fmt"
)

// ResolutionError reports a specifier that could not be located. Optional marks
// the soft variant: the target package is not listed in the referencing
// package's dependencies or peerDependencies, so callers may downgrade the
// failure to a warning.
type ResolutionError struct {
	Specifier string
	From      string
	Optional  bool
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("Cannot find package '%s' from '%s'", e.Specifier, e.From)
	if e.Optional {
		msg += ". But it's not listed in dependencies or peerDependencies"
	}
	return msg
}

// IsOptional reports whether err is a ResolutionError of the optional kind.
func IsOptional(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr) && resErr.Optional
}
