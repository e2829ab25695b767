package codec

import "errors"

var (
	ErrInvalidCharacter = errors.New("invalid character in encoded input")
	ErrInvalidPadding   = errors.New("invalid padding in encoded input")
)
