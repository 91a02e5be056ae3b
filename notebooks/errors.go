package notebooks

import "errors"

var (
	ErrIndexOutOfRange = errors.New("cell index out of range")
	ErrUnknownCellKind = errors.New("unknown cell kind")
)
