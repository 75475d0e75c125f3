//go:build !linux

package input

// NewKeyboard has no device backing off Linux; keyboard control is handled
// by the terminal renderer there.
func NewKeyboard(logger Logger) Input { return NewNoop() }
