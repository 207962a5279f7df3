package bytecode

import "errors"

// Framing errors. These abort a load and never reach a script's try/catch.
var (
	ErrInvalidBytecode = errors.New("invalid bytecode")
	ErrBufferExhausted = errors.New("buffer exhausted")
	ErrStringTooLong   = errors.New("string too long")
	ErrBadMagic        = errors.New("bad magic number")
	ErrPointerWidth    = errors.New("pointer width mismatch")
)
