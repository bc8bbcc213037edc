// =============================================================================
// Fake Transaction Generator - Configuration Validation
// =============================================================================
//
// This module validates a loaded configuration before the generator runs.
// Defects that would make the injection plan meaningless (unknown kinds,
// negative counts, an inverted date range, missing pools) are fatal here;
// the engine never sees an invalid plan.
//
// Sentinel errors are exported so callers can branch on the defect class
// with errors.Is.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ginjaninja78/fake-transaction-generator/internal/irregularity"
)

// dateLayout is the ISO 8601 date form used across the configuration.
const dateLayout = "2006-01-02"

// Fatal configuration defect classes.
var (
	// ErrUnknownKind marks an irregularity kind the catalog does not know.
	ErrUnknownKind = errors.New("unknown irregularity kind")

	// ErrNegativeCount marks a negative transaction or irregularity count.
	ErrNegativeCount = errors.New("count must not be negative")

	// ErrEndBeforeStart marks an inverted date range.
	ErrEndBeforeStart = errors.New("end_date precedes start_date")

	// ErrNoVendors marks an empty vendor pool when random transactions
	// are requested.
	ErrNoVendors = errors.New("vendor pool is empty")

	// ErrNoPersonalPool marks empty personal pools while the
	// personal-expense irregularity is enabled.
	ErrNoPersonalPool = errors.New("personal expense pools are empty")
)

// validate is the shared struct validator with the custom kind check
// registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Register custom validation for irregularity kind identifiers.
	v.RegisterValidation("irregularity_kind", func(fl validator.FieldLevel) bool {
		return irregularity.IsRegistered(fl.Field().String())
	})

	return v
}

// Validate checks the configuration and fills in the parsed date bounds.
//
// RETURNS:
//   - nil when the configuration is usable
//   - a sentinel-wrapped error for plan-level defects, or a struct
//     validation error for field-level ones
func (c *Config) Validate() error {
	// -------------------------------------------------------------------------
	// STEP 1: Parse and order the date range
	// -------------------------------------------------------------------------
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("failed to parse start_date %q: %w", c.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("failed to parse end_date %q: %w", c.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: start %s, end %s", ErrEndBeforeStart, c.StartDate, c.EndDate)
	}
	c.Start = start
	c.End = end

	// -------------------------------------------------------------------------
	// STEP 2: Check counts
	// -------------------------------------------------------------------------
	if c.NumTransactions < 0 {
		return fmt.Errorf("%w: num_transactions is %d", ErrNegativeCount, c.NumTransactions)
	}
	if c.TotalIrregularities < 0 {
		return fmt.Errorf("%w: total_irregularities is %d", ErrNegativeCount, c.TotalIrregularities)
	}

	// -------------------------------------------------------------------------
	// STEP 3: Check the irregularity plan
	// -------------------------------------------------------------------------
	kinds := make([]string, 0, len(c.Irregularities))
	for kind := range c.Irregularities {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		ks := c.Irregularities[kind]
		if !irregularity.IsRegistered(kind) {
			return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		if ks.Count < 0 {
			return fmt.Errorf("%w: irregularity %q count is %d", ErrNegativeCount, kind, ks.Count)
		}
		if ks.Threshold < 0 || ks.Threshold > 1 {
			return fmt.Errorf("irregularity %q threshold %v must be within [0, 1]", kind, ks.Threshold)
		}
	}

	// -------------------------------------------------------------------------
	// STEP 4: Check the pools the plan depends on
	// -------------------------------------------------------------------------
	if c.NumTransactions > 0 && len(c.Vendors) == 0 {
		return fmt.Errorf("%w: num_transactions is %d", ErrNoVendors, c.NumTransactions)
	}
	if ks, ok := c.Irregularities[string(irregularity.KindPersonalExpense)]; ok && ks.Enabled {
		if len(c.PersonalVendors) == 0 || len(c.PersonalExpenseDescriptions) == 0 {
			return fmt.Errorf("%w: personal_expense is enabled", ErrNoPersonalPool)
		}
	}

	// -------------------------------------------------------------------------
	// STEP 5: Struct validation for the remaining field rules
	// -------------------------------------------------------------------------
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}
