package domain

import "errors"

// ErrProgramNotFound is returned when a program is absent from a backing
// store. Resolvers and network clients wrap it so callers can use errors.Is.
var ErrProgramNotFound = errors.New("program not found")
