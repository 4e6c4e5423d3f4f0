package hex

import "errors"

// ErrInvalidArgument is returned for inputs an operation is not defined on:
// rotating or moving along Incorrect, or searching an empty point set.
var ErrInvalidArgument = errors.New("invalid argument")
