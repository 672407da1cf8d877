package purchasing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationResult carries the outcome of a return validation pass. All
// applicable errors are accumulated so a caller can show the complete list in
// one round trip instead of fixing problems one at a time.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ErrorMessage joins all accumulated errors into a single message
func (r ValidationResult) ErrorMessage() string {
	return strings.Join(r.Errors, "; ")
}

// ValidateReturnItems decides whether the proposed return lines may be
// recorded against this purchase. The check is pure: it evaluates the proposal
// against the already-committed return history and performs no mutation, so it
// is safe to re-run on every caller input change. Quantities are accumulated
// across the proposal's own lines, so splitting one product over several lines
// cannot exceed what a single line could return.
func (p *Purchase) ValidateReturnItems(proposed []ProposedReturnItem) ValidationResult {
	var errs []string

	if p.ID == uuid.Nil {
		errs = append(errs, "purchase is missing an identifier")
		return ValidationResult{Valid: false, Errors: errs}
	}
	if len(proposed) == 0 {
		errs = append(errs, "select at least one product to return")
		return ValidationResult{Valid: false, Errors: errs}
	}

	requested := make(map[uuid.UUID]int64, len(proposed))
	for _, pi := range proposed {
		original := p.GetItem(pi.ProductID)
		if original == nil {
			errs = append(errs, fmt.Sprintf("product %s is not part of this purchase", pi.ProductID))
			continue
		}

		if pi.ReturnedQuantity <= 0 {
			errs = append(errs, fmt.Sprintf("return quantity for %s must be positive", original.ProductName))
		} else {
			requested[pi.ProductID] += pi.ReturnedQuantity
			if max := p.ReturnableQuantity(pi.ProductID); requested[pi.ProductID] > max {
				errs = append(errs, fmt.Sprintf("cannot return %d units of %s: only %d remain returnable",
					requested[pi.ProductID], original.ProductName, max))
			}
		}

		// Exact cent comparison; there is no float tolerance to get wrong.
		if !pi.UnitCost.Equals(original.UnitCost) {
			errs = append(errs, fmt.Sprintf("unit cost %s for %s does not match the purchase price %s",
				pi.UnitCost, original.ProductName, original.UnitCost))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
