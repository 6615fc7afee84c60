// Package engine implements UPC-A validation, decoding and single-digit
// recovery. It is a pure, stateless core: every function is side-effect free
// and safe for concurrent use.
package engine

import (
	"fmt"
	"strings"

	"upc/pkg/domain"
)

const (
	// Length is the number of symbols in a UPC-A code.
	Length = 12

	// Unknown is the canonical marker for a single undetermined digit.
	Unknown = '?'
	// UnknownAlias is accepted on input and normalized to Unknown.
	UnknownAlias = '_'
)

// categories maps the number-system digit to its product category.
// Digits 1, 8 and 9 are reserved.
var categories = map[byte]string{
	'0': "General groceries",
	'1': "Reserved for future use",
	'2': "Meat and produce (variable weight)",
	'3': "Drugs & health products",
	'4': "Non-food items (in-store)",
	'5': "Coupons",
	'6': "Other items",
	'7': "Other items",
	'8': "Reserved for future use",
	'9': "Reserved for future use",
}

// FormatError reports an input that is not a well-formed UPC candidate:
// wrong length after normalization, or an illegal character.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return e.Reason }

// AmbiguousError reports an input with more than one unknown marker, which
// the checksum constraint cannot recover.
type AmbiguousError struct {
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("code contains %d unknown digits, at most one can be recovered", e.Count)
}

// Normalize returns the canonical form of a raw UPC candidate.
//
// The rules are:
//   - Strip surrounding whitespace
//   - Replace the '_' alias with the canonical '?' marker
//   - Reject any character outside 0-9, '?' and '_'
//   - Require exactly 12 symbols after normalization
//
// A violation is reported as a *FormatError.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == Unknown || r == UnknownAlias:
			b.WriteByte(Unknown)
		default:
			return "", &FormatError{Reason: fmt.Sprintf("illegal character %q, UPC may contain only digits and %q", r, Unknown)}
		}
	}

	code := b.String()
	if len(code) != Length {
		return "", &FormatError{Reason: fmt.Sprintf("UPC must be exactly %d digits (got %d)", Length, len(code))}
	}

	return code, nil
}

// weight returns the checksum weight for a 1-based symbol position.
// Odd positions weigh 3, even positions weigh 1; both are coprime to 10.
func weight(pos int) int {
	if pos%2 == 1 {
		return 3
	}

	return 1
}

// ExpectedCheckDigit computes the check digit implied by the first 11 digits
// of code, so that the weighted sum of all 12 digits is divisible by 10.
// code must contain at least 11 decimal digits; Normalize guarantees this for
// every fully-known candidate.
func ExpectedCheckDigit(code string) int {
	sum := 0
	for i := 0; i < Length-1; i++ {
		sum += weight(i+1) * int(code[i]-'0')
	}

	return (10 - sum%10) % 10
}

// Solve recovers the single unknown digit in code and returns the completed
// 12-digit string together with the 1-based position of the recovered digit.
// code must be a normalized candidate containing exactly one unknown marker.
//
// The unknown x at position k satisfies weight(k)*x + knownSum = 0 (mod 10).
// Both weights are invertible mod 10 (3^-1 = 7, 1^-1 = 1), so x is computed
// directly; no search over 0-9 is needed. The completed code is re-verified
// against the checksum; a mismatch there would be an implementation defect
// and is returned as an error rather than a user-facing outcome.
func Solve(code string) (string, int, error) {
	pos := strings.IndexByte(code, Unknown)
	if pos < 0 || strings.IndexByte(code[pos+1:], Unknown) >= 0 {
		return "", 0, fmt.Errorf("solve requires exactly one unknown marker in %q", code)
	}

	knownSum := 0
	for i := 0; i < Length; i++ {
		if i == pos {
			continue
		}
		knownSum += weight(i+1) * int(code[i]-'0')
	}

	// x = -knownSum * weight^-1 (mod 10)
	inverse := 1
	if weight(pos+1) == 3 {
		inverse = 7
	}
	x := (10 - knownSum%10) % 10 * inverse % 10

	solved := code[:pos] + string(byte('0'+x)) + code[pos+1:]
	if ExpectedCheckDigit(solved) != int(solved[Length-1]-'0') {
		return "", 0, fmt.Errorf("solved digit %d fails checksum verification for %q", x, code)
	}

	return solved, pos + 1, nil
}

// Decode splits a fully-resolved 12-digit code into its segments and resolves
// the product category from the number-system digit. It never fails given a
// 12-digit input; the validity flag is left for the caller to fill.
func Decode(digits string) domain.ValidationResult {
	return domain.ValidationResult{
		Digits:       digits,
		NumberSystem: digits[:1],
		Manufacturer: digits[1:6],
		Product:      digits[6:11],
		CheckDigit:   digits[11:],
		Category:     categories[digits[0]],
	}
}

// Evaluate normalizes, classifies and decodes a raw UPC candidate. Every
// input, however malformed, produces a structured result; the error return is
// reserved for internal defects (a solved digit failing verification, which
// is unreachable by construction) and is nil for all user inputs.
func Evaluate(raw string) (domain.ValidationResult, error) {
	code, err := Normalize(raw)
	if err != nil {
		return domain.ValidationResult{
			Outcome: domain.OutcomeMalformed,
			Error:   err.Error(),
		}, nil
	}

	switch unknowns := strings.Count(code, string(Unknown)); {
	case unknowns > 1:
		ambiguous := &AmbiguousError{Count: unknowns}

		return domain.ValidationResult{
			Outcome: domain.OutcomeUnsolvable,
			Error:   ambiguous.Error(),
		}, nil

	case unknowns == 1:
		solved, pos, err := Solve(code)
		if err != nil {
			return domain.ValidationResult{}, fmt.Errorf("could not solve unknown digit: %w", err)
		}

		res := Decode(solved)
		res.Outcome = domain.OutcomeSolved
		res.SolvedPosition = pos
		// valid by construction, confirmed inside Solve
		res.Valid = true

		return res, nil

	default:
		res := Decode(code)
		res.Outcome = domain.OutcomeResolved
		// an invalid check digit is a normal resolved outcome, not an error;
		// the segments stay decoded either way
		res.Valid = ExpectedCheckDigit(code) == int(code[Length-1]-'0')

		return res, nil
	}
}
