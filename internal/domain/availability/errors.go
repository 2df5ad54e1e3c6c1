package availability

import "errors"

// ErrInvalidArgument marks caller mistakes (missing practitioner id,
// missing or malformed date). Handlers map it to 400; it is never retried.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrDependencyFailure marks data-store read/write failures. Handlers map
// it to 500; the service does not retry or degrade.
var ErrDependencyFailure = errors.New("dependency failure")
