package cells

import "errors"

var (
	ErrUnknownKind         = errors.New("unknown cell kind")
	ErrInvalidTemperature  = errors.New("invalid temperature")
	ErrInvalidResponseName = errors.New("invalid response variable name")
)
