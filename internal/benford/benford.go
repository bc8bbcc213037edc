// =============================================================================
// Fake Transaction Generator - Benford Amount Sampler
// =============================================================================
//
// This module produces transaction amounts whose leading significant digit
// follows Benford's Law: digit d occurs with probability log10(1 + 1/d).
// Naturally occurring financial datasets follow this distribution, so baseline
// amounts sampled here look realistic to downstream fraud-detection tooling.
//
// LEADING DIGIT FREQUENCIES:
//   | Digit | 1    | 2    | 3    | 4   | 5   | 6   | 7   | 8   | 9   |
//   | %     | 30.1 | 17.6 | 12.5 | 9.7 | 7.9 | 6.7 | 5.8 | 5.1 | 4.6 |
//
// The sampler is a pure function of the supplied random source: each call is
// independent, the sequence is infinite and restartable, and two samplers
// reading the same seeded source produce the same values.
//
// =============================================================================

package benford

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DISTRIBUTION TABLE
// =============================================================================

// cumulativeWeights holds the cumulative Benford leading-digit weights in
// tenths of a percent. A uniform draw in [0, 1000) lands in the bucket of the
// digit it selects: 301 out of 1000 draws select 1, 176 select 2, and so on.
var cumulativeWeights = [9]int{301, 477, 602, 699, 778, 845, 903, 954, 1000}

// mantissaDigits is the number of fractional digits sampled after the leading
// digit. Six digits match the resolution of naturally distributed mantissas
// while keeping every intermediate value exact in decimal form.
const mantissaDigits = 1_000_000

// =============================================================================
// SAMPLING
// =============================================================================

// Sample returns a positive amount whose leading digit follows Benford's Law,
// scaled into a plausible transaction range of tens to tens of thousands and
// rounded to two decimal places.
func Sample(rng *rand.Rand) decimal.Decimal {
	d := leadingDigitDraw(rng)

	// Build the mantissa d.dddddd as an exact integer scaled by 10^-6.
	// The leading digit is fixed by the weighted draw; the remaining digits
	// are uniform, which leaves the leading-digit distribution untouched.
	mantissa := int64(d)*int64(mantissaDigits) + rng.Int63n(int64(mantissaDigits))

	// Scale by a uniform power of ten. Powers of ten never change the
	// leading digit, so the Benford property survives the magnitude spread.
	// Exponents 1 through 4 yield amounts in [10, 100000).
	exponent := 1 + rng.Intn(4)

	return decimal.New(mantissa, int32(exponent-6)).Round(2)
}

// leadingDigitDraw selects a leading digit 1..9 with Benford probabilities.
func leadingDigitDraw(rng *rand.Rand) int {
	roll := rng.Intn(1000)
	for digit, bound := range cumulativeWeights {
		if roll < bound {
			return digit + 1
		}
	}
	return 9
}

// =============================================================================
// INSPECTION
// =============================================================================

// LeadingDigit returns the first significant digit of an amount, or 0 when the
// amount has no significant digits. Sign and magnitude are ignored: -0.042 and
// 4200 both report 4.
func LeadingDigit(amount decimal.Decimal) int {
	for _, r := range amount.Abs().String() {
		if r >= '1' && r <= '9' {
			return int(r - '0')
		}
	}
	return 0
}
