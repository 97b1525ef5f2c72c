package types

// Program is a parsed program together with its verbatim source.
type Program struct {
	ID        ProgramID   `json:"id"`
	Source    string      `json:"source"`
	Imports   []ProgramID `json:"imports,omitempty"`
	Functions []Function  `json:"functions,omitempty"`
}

// Function looks up a function by name.
func (p Program) Function(name string) (Function, bool) {
	for _, f := range p.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}

// ImportsProgram reports whether id is a direct import of p.
func (p Program) ImportsProgram(id ProgramID) bool {
	for _, imp := range p.Imports {
		if imp == id {
			return true
		}
	}
	return false
}

// Function is a callable entry point of a program.
type Function struct {
	Name   string  `json:"name"`
	Inputs []Input `json:"inputs,omitempty"`
	Calls  []Call  `json:"calls,omitempty"`
}

// Input declares one function input, e.g. register r0 of type "u64.public".
type Input struct {
	Register string `json:"register"`
	Type     string `json:"type"`
}

// Call is a cross-program call made from a function body.
type Call struct {
	Program  ProgramID `json:"program"`
	Function string    `json:"function"`
}
