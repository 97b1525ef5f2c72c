package vm

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"progman/internal/domain"
)

// checkInput validates a literal against a declared type such as
// "u64.public". Types that are not literals (records, structs) pass through.
func checkInput(value, typ string) error {
	base, _, _ := strings.Cut(typ, ".")
	switch base {
	case "address":
		if _, err := domain.Address(value).PublicKey(); err != nil {
			return err
		}
		return nil
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("%q is not a bool", value)
		}
		return nil
	case "field", "group", "scalar":
		digits, ok := strings.CutSuffix(value, base)
		if !ok || !isDigits(strings.ReplaceAll(digits, "_", "")) {
			return fmt.Errorf("%q is not a %s", value, base)
		}
		return nil
	}

	signed, bits, ok := integerType(base)
	if !ok {
		return nil
	}
	digits, ok := strings.CutSuffix(value, base)
	if !ok {
		return fmt.Errorf("%q is missing the %s suffix", value, base)
	}
	n, ok := new(big.Int).SetString(strings.ReplaceAll(digits, "_", ""), 10)
	if !ok {
		return fmt.Errorf("%q is not an integer", value)
	}
	lo, hi := integerBounds(signed, bits)
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return fmt.Errorf("%q overflows %s", value, base)
	}
	return nil
}

// integerType parses u8..u128 and i8..i128.
func integerType(t string) (signed bool, bits int, ok bool) {
	if len(t) < 2 || (t[0] != 'u' && t[0] != 'i') {
		return false, 0, false
	}
	bits, err := strconv.Atoi(t[1:])
	if err != nil {
		return false, 0, false
	}
	switch bits {
	case 8, 16, 32, 64, 128:
		return t[0] == 'i', bits, true
	}
	return false, 0, false
}

func integerBounds(signed bool, bits int) (lo, hi *big.Int) {
	one := big.NewInt(1)
	if !signed {
		hi = new(big.Int).Lsh(one, uint(bits))
		return big.NewInt(0), hi.Sub(hi, one)
	}
	half := new(big.Int).Lsh(one, uint(bits-1))
	lo = new(big.Int).Neg(half)
	hi = new(big.Int).Sub(half, one)
	return lo, hi
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
