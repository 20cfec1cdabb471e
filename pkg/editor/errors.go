package editor

import "errors"

var (
	ErrSameComponent    = errors.New("terminals belong to the same component")
	ErrUnknownComponent = errors.New("unknown component")
	ErrUnknownType      = errors.New("unknown component type")
	ErrUnknownWire      = errors.New("unknown wire")
	ErrNoDrag           = errors.New("no drag in progress")
)
