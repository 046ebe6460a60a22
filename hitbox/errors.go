package hitbox

import "errors"

var (
	ErrInvalidDimensions  = errors.New("hitbox: rows, columns and categories must be positive")
	ErrIndexOutOfRange    = errors.New("hitbox: frame or category index out of range")
	ErrRectIndexInvalid   = errors.New("hitbox: rect index not present in category")
	ErrDimensionMismatch  = errors.New("hitbox: atlas dimensions do not match")
	ErrFormat             = errors.New("hitbox: malformed hitbox file")
	ErrUnsupportedVersion = errors.New("hitbox: unsupported file version")
)
