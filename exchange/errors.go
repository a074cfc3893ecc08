package exchange

import (
	"fmt"

	"github.com/pkg/errors"
)

// TransportError reports a failure of the HTTP layer: client construction
// or the exchange itself. A response with a non-2xx status is not a
// TransportError.
type TransportError string

func (e *TransportError) Error() string {
	return string(*e)
}

func newTransportError(format string, a ...interface{}) error {
	t := TransportError(fmt.Sprintf(format, a...))
	return errors.WithStack(&t)
}
