package veb

import "github.com/pkg/errors"

var (
	ErrInvalidUniverse = errors.New("veb: invalid universe size")
	ErrKeyOutOfRange   = errors.New("veb: key out of range")
)
