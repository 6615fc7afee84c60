package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"upc/internal/engine"
	"upc/pkg/domain"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{
			name: "plain digits",
			in:   "036000291452",
			out:  "036000291452",
			ok:   true,
		},
		{
			name: "surrounding whitespace stripped",
			in:   "  036000291452\n",
			out:  "036000291452",
			ok:   true,
		},
		{
			name: "underscore alias becomes question mark",
			in:   "03600029145_",
			out:  "03600029145?",
			ok:   true,
		},
		{
			name: "question mark kept",
			in:   "?36000291452",
			out:  "?36000291452",
			ok:   true,
		},
		{
			name: "too short",
			in:   "1234567890",
			ok:   false,
		},
		{
			name: "too long",
			in:   "0360002914521",
			ok:   false,
		},
		{
			name: "illegal character",
			in:   "03600029145A",
			ok:   false,
		},
		{
			name: "inner whitespace is illegal",
			in:   "036000 291452",
			ok:   false,
		},
		{
			name: "empty input",
			in:   "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		got, err := engine.Normalize(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			if got != tc.out {
				t.Fatalf("%s: got %q want %q", tc.name, got, tc.out)
			}

			continue
		}

		if err == nil {
			t.Fatalf("%s: expected error, got %q", tc.name, got)
		}

		var formatErr *engine.FormatError
		require.ErrorAs(t, err, &formatErr, tc.name)
	}
}

func TestExpectedCheckDigit(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{code: "036000291452", want: 2},
		{code: "012000161155", want: 5},
		{code: "078000082487", want: 7},
		{code: "041196403091", want: 1},
		// first 11 digits all zero: weighted sum 0, check digit 0
		{code: "000000000000", want: 0},
	}

	for _, tc := range cases {
		if got := engine.ExpectedCheckDigit(tc.code); got != tc.want {
			t.Fatalf("%s: got check digit %d want %d", tc.code, got, tc.want)
		}
	}
}

func TestEvaluate_Resolved(t *testing.T) {
	res, err := engine.Evaluate("036000291452")
	require.NoError(t, err)

	require.Equal(t, domain.OutcomeResolved, res.Outcome)
	require.True(t, res.Valid)
	require.Equal(t, "036000291452", res.Digits)
	require.Equal(t, "0", res.NumberSystem)
	require.Equal(t, "36000", res.Manufacturer)
	require.Equal(t, "29145", res.Product)
	require.Equal(t, "2", res.CheckDigit)
	require.Equal(t, "General groceries", res.Category)
	require.Zero(t, res.SolvedPosition)
	require.Empty(t, res.Error)
}

func TestEvaluate_KnownValidCodes(t *testing.T) {
	for _, code := range []string{"012000161155", "078000082487", "041196403091"} {
		res, err := engine.Evaluate(code)
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeResolved, res.Outcome, code)
		require.True(t, res.Valid, code)
		require.Equal(t, code, res.Digits, code)
	}
}

func TestEvaluate_InvalidCheckDigitStillDecodes(t *testing.T) {
	res, err := engine.Evaluate("036000291450")
	require.NoError(t, err)

	require.Equal(t, domain.OutcomeResolved, res.Outcome)
	require.False(t, res.Valid)
	// segments stay populated despite the failed checksum
	require.Equal(t, "36000", res.Manufacturer)
	require.Equal(t, "29145", res.Product)
	require.Equal(t, "0", res.CheckDigit)
	require.Equal(t, "General groceries", res.Category)
}

func TestEvaluate_Solved(t *testing.T) {
	res, err := engine.Evaluate("03600029145?")
	require.NoError(t, err)

	require.Equal(t, domain.OutcomeSolved, res.Outcome)
	require.True(t, res.Valid)
	require.Equal(t, "036000291452", res.Digits)
	require.Equal(t, 12, res.SolvedPosition)
}

func TestEvaluate_Malformed(t *testing.T) {
	for _, in := range []string{"1234567890", "03600029145A", "", "036000291452 7"} {
		res, err := engine.Evaluate(in)
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeMalformed, res.Outcome, in)
		require.NotEmpty(t, res.Error, in)
		require.Empty(t, res.Digits, in)
	}
}

func TestEvaluate_Unsolvable(t *testing.T) {
	res, err := engine.Evaluate("03600029?45?")
	require.NoError(t, err)

	require.Equal(t, domain.OutcomeUnsolvable, res.Outcome)
	require.NotEmpty(t, res.Error)
	require.Empty(t, res.Digits)
}

func TestEvaluate_Deterministic(t *testing.T) {
	first, err := engine.Evaluate("036000291452")
	require.NoError(t, err)
	second, err := engine.Evaluate("036000291452")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// Masking any single digit of a valid code must recover the code exactly,
// through either marker spelling.
func TestSolveRoundTrip(t *testing.T) {
	codes := []string{
		"036000291452",
		"012000161155",
		"078000082487",
		"041196403091",
		"000000000000",
	}

	for _, code := range codes {
		for pos := 0; pos < engine.Length; pos++ {
			for _, marker := range []string{"?", "_"} {
				masked := code[:pos] + marker + code[pos+1:]

				res, err := engine.Evaluate(masked)
				require.NoError(t, err, masked)
				require.Equal(t, domain.OutcomeSolved, res.Outcome, masked)
				require.True(t, res.Valid, masked)
				require.Equal(t, code, res.Digits, masked)
				require.Equal(t, pos+1, res.SolvedPosition, masked)
			}
		}
	}
}

func TestSolve_RequiresExactlyOneMarker(t *testing.T) {
	_, _, err := engine.Solve("036000291452")
	require.Error(t, err)

	_, _, err = engine.Solve(strings.Repeat("?", engine.Length))
	require.Error(t, err)
}

func TestDecode_Categories(t *testing.T) {
	cases := []struct {
		numberSystem byte
		category     string
	}{
		{numberSystem: '0', category: "General groceries"},
		{numberSystem: '1', category: "Reserved for future use"},
		{numberSystem: '2', category: "Meat and produce (variable weight)"},
		{numberSystem: '3', category: "Drugs & health products"},
		{numberSystem: '4', category: "Non-food items (in-store)"},
		{numberSystem: '5', category: "Coupons"},
		{numberSystem: '6', category: "Other items"},
		{numberSystem: '7', category: "Other items"},
		{numberSystem: '8', category: "Reserved for future use"},
		{numberSystem: '9', category: "Reserved for future use"},
	}

	for _, tc := range cases {
		digits := string(tc.numberSystem) + "036000291452"[1:]
		res := engine.Decode(digits)
		require.Equal(t, tc.category, res.Category, string(tc.numberSystem))
	}
}
