package program_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progman/internal/domain"
	"progman/internal/protocol/program"
)

const wallet = `// wallet pays through the token program
import token.aleo;
program wallet.aleo;

mapping balances:
    key as address.public;
    value as u64.public;

function pay:
    input r0 as address.public;
    input r1 as u64.public;
    call token.aleo/transfer r0 r1;

function noop:
    finalize noop:
        input r0 as u8.public;
`

func TestParse(t *testing.T) {
	p, err := program.Parse(wallet)
	require.NoError(t, err)

	want := domain.Program{
		ID:      "wallet.aleo",
		Source:  wallet,
		Imports: []domain.ProgramID{"token.aleo"},
		Functions: []domain.Function{
			{
				Name: "pay",
				Inputs: []domain.Input{
					{Register: "r0", Type: "address.public"},
					{Register: "r1", Type: "u64.public"},
				},
				Calls: []domain.Call{{Program: "token.aleo", Function: "transfer"}},
			},
			{Name: "noop"},
		},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing program":       "function f:\n",
		"import after program":  "program a.aleo;\nimport b.aleo;\n",
		"duplicate program":     "program a.aleo;\nprogram b.aleo;\n",
		"bad id":                "program A.aleo;\n",
		"wrong suffix":          "program a.eth;\n",
		"missing semicolon":     "program a.aleo\n",
		"duplicate import":      "import b.aleo;\nimport b.aleo;\nprogram a.aleo;\n",
		"self import":           "import a.aleo;\nprogram a.aleo;\n",
		"duplicate function":    "program a.aleo;\nfunction f:\nfunction f:\n",
		"malformed function":    "program a.aleo;\nfunction f\n",
		"malformed input":       "program a.aleo;\nfunction f:\n    input r0 u8;\n",
		"bad call target":       "program a.aleo;\nfunction f:\n    call B.aleo/g;\n",
		"function before decl":  "function f:\nprogram a.aleo;\n",
		"mapping before decl":   "mapping m:\nprogram a.aleo;\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := program.Parse(src)
			assert.Error(t, err)
		})
	}
}

func TestParse_SyntaxErrorCarriesLine(t *testing.T) {
	_, err := program.Parse("program a.aleo;\n\nfunction f\n")
	var se *program.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Line)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, program.ValidateID("credits.aleo"))
	assert.NoError(t, program.ValidateID("a_1.aleo"))
	for _, id := range []domain.ProgramID{"", "credits", "../x.aleo", "a/b.aleo", "1a.aleo", "a.aleo.aleo"} {
		assert.ErrorIs(t, program.ValidateID(id), program.ErrInvalidID, id)
	}
}
