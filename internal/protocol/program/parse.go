package program

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"progman/internal/domain"
)

// ErrInvalidID is returned for identifiers that are not of the form <name>.aleo.
var ErrInvalidID = errors.New("invalid program id")

var (
	idPattern   = regexp.MustCompile(`^[a-z][a-z0-9_]*\.aleo$`)
	namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// SyntaxError reports a malformed line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

// ValidateID checks that id is a well-formed program identifier.
func ValidateID(id domain.ProgramID) error {
	if !idPattern.MatchString(string(id)) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Parse extracts the program id, imports and function signatures from source.
func Parse(source string) (domain.Program, error) {
	p := domain.Program{Source: source}
	var (
		declared bool
		current  = -1 // index into p.Functions, -1 outside a function
		seenFn   = map[string]bool{}
		seenImp  = map[domain.ProgramID]bool{}
	)

	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		fail := func(format string, args ...any) error {
			return &SyntaxError{Line: lineNo, Msg: fmt.Sprintf(format, args...)}
		}

		switch fields[0] {
		case "import":
			if declared {
				return domain.Program{}, fail("import after program declaration")
			}
			id, err := statementID(fields)
			if err != nil {
				return domain.Program{}, fail("%v", err)
			}
			if seenImp[id] {
				return domain.Program{}, fail("duplicate import %s", id)
			}
			seenImp[id] = true
			p.Imports = append(p.Imports, id)

		case "program":
			if declared {
				return domain.Program{}, fail("duplicate program declaration")
			}
			id, err := statementID(fields)
			if err != nil {
				return domain.Program{}, fail("%v", err)
			}
			if seenImp[id] {
				return domain.Program{}, fail("program %s imports itself", id)
			}
			p.ID = id
			declared = true

		case "function":
			if !declared {
				return domain.Program{}, fail("function before program declaration")
			}
			if len(fields) != 2 || !strings.HasSuffix(fields[1], ":") {
				return domain.Program{}, fail("expected 'function <name>:'")
			}
			name := strings.TrimSuffix(fields[1], ":")
			if !namePattern.MatchString(name) {
				return domain.Program{}, fail("invalid function name %q", name)
			}
			if seenFn[name] {
				return domain.Program{}, fail("duplicate function %s", name)
			}
			seenFn[name] = true
			p.Functions = append(p.Functions, domain.Function{Name: name})
			current = len(p.Functions) - 1

		case "closure", "finalize", "mapping", "record", "struct":
			if !declared {
				return domain.Program{}, fail("%s before program declaration", fields[0])
			}
			current = -1

		case "input":
			if current < 0 {
				continue
			}
			if len(fields) != 4 || fields[2] != "as" || !strings.HasSuffix(fields[3], ";") {
				return domain.Program{}, fail("expected 'input <register> as <type>;'")
			}
			fn := &p.Functions[current]
			fn.Inputs = append(fn.Inputs, domain.Input{
				Register: fields[1],
				Type:     strings.TrimSuffix(fields[3], ";"),
			})

		case "call":
			if current < 0 {
				continue
			}
			if len(fields) < 2 {
				return domain.Program{}, fail("expected 'call <program>/<function> ...;'")
			}
			target := strings.TrimSuffix(fields[1], ";")
			progID, fnName, ok := strings.Cut(target, "/")
			if !ok {
				// Calls to local closures carry no program prefix.
				continue
			}
			if err := ValidateID(domain.ProgramID(progID)); err != nil {
				return domain.Program{}, fail("%v", err)
			}
			if !namePattern.MatchString(fnName) {
				return domain.Program{}, fail("invalid function name %q", fnName)
			}
			fn := &p.Functions[current]
			fn.Calls = append(fn.Calls, domain.Call{Program: domain.ProgramID(progID), Function: fnName})
		}
	}

	if !declared {
		return domain.Program{}, errors.New("missing program declaration")
	}
	return p, nil
}

// statementID parses "<keyword> <id>;".
func statementID(fields []string) (domain.ProgramID, error) {
	if len(fields) != 2 || !strings.HasSuffix(fields[1], ";") {
		return "", fmt.Errorf("expected '%s <id>;'", fields[0])
	}
	id := domain.ProgramID(strings.TrimSuffix(fields[1], ";"))
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}
