package types

import "strings"

// ProgramSuffix terminates every program identifier.
const ProgramSuffix = ".aleo"

// ProgramID names a program, e.g. "token.aleo".
type ProgramID string

// String returns the string form of the identifier.
func (id ProgramID) String() string { return string(id) }

// Name returns the identifier without its suffix.
func (id ProgramID) Name() string { return strings.TrimSuffix(string(id), ProgramSuffix) }

// TransactionID is the hex digest identifying a transaction.
type TransactionID string

// String returns the string form of the identifier.
func (id TransactionID) String() string { return string(id) }
