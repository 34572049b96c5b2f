package service

import (
	"planportal/models"
)

// ProRata splits the loan amount evenly across the candidate funding sources.
// The last source absorbs the rounding remainder so the lines always sum to
// the amount exactly.
func ProRata(amount float64, sources []models.FundingSource) []models.AllocationLine {
	if len(sources) == 0 {
		return []models.AllocationLine{}
	}

	share := roundCents(amount / float64(len(sources)))
	lines := make([]models.AllocationLine, len(sources))
	allocated := 0.0
	for i, src := range sources {
		lineAmount := share
		if i == len(sources)-1 {
			lineAmount = roundCents(amount - allocated)
		}
		allocated = roundCents(allocated + lineAmount)
		lines[i] = models.AllocationLine{
			SourceID:   src.ID,
			SourceName: src.Name,
			Amount:     lineAmount,
			Percentage: linePercentage(lineAmount, amount),
		}
	}
	return lines
}

// Normalize recomputes each line's percentage from its amount and forces the
// last line to absorb the difference between the target amount and the sum of
// the other lines. It restores the total-match invariant after arbitrary user
// edits and is idempotent for an unchanged target amount.
func Normalize(lines []models.AllocationLine, amount float64) []models.AllocationLine {
	if len(lines) == 0 {
		return []models.AllocationLine{}
	}

	normalized := make([]models.AllocationLine, len(lines))
	copy(normalized, lines)

	allocated := 0.0
	for i := range normalized[:len(normalized)-1] {
		normalized[i].Amount = roundCents(normalized[i].Amount)
		allocated = roundCents(allocated + normalized[i].Amount)
	}
	normalized[len(normalized)-1].Amount = roundCents(amount - allocated)

	for i := range normalized {
		normalized[i].Percentage = linePercentage(normalized[i].Amount, amount)
	}
	return normalized
}

// AllocationTotal sums the line amounts to the cent
func AllocationTotal(lines []models.AllocationLine) float64 {
	total := 0.0
	for _, line := range lines {
		total = roundCents(total + line.Amount)
	}
	return total
}

func linePercentage(lineAmount, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return roundCents(lineAmount / amount * 100)
}
