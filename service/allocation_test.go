package service

import (
	"testing"

	"planportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSources() []models.FundingSource {
	return []models.FundingSource{
		{ID: "src-pretax", Name: "Pre-Tax Contributions"},
		{ID: "src-roth", Name: "Roth Contributions"},
		{ID: "src-match", Name: "Employer Match"},
	}
}

func TestProRata(t *testing.T) {
	t.Run("remainder lands on the last source", func(t *testing.T) {
		lines := ProRata(1000, threeSources())
		require.Len(t, lines, 3)

		assert.Equal(t, 333.33, lines[0].Amount)
		assert.Equal(t, 333.33, lines[1].Amount)
		assert.Equal(t, 333.34, lines[2].Amount)
		assert.Equal(t, 1000.00, AllocationTotal(lines))
	})

	t.Run("even split", func(t *testing.T) {
		lines := ProRata(900, threeSources())
		for _, line := range lines {
			assert.Equal(t, 300.00, line.Amount)
		}
	})

	t.Run("single source takes everything", func(t *testing.T) {
		lines := ProRata(2500, threeSources()[:1])
		require.Len(t, lines, 1)
		assert.Equal(t, 2500.00, lines[0].Amount)
		assert.Equal(t, 100.00, lines[0].Percentage)
	})

	t.Run("no sources", func(t *testing.T) {
		assert.Empty(t, ProRata(1000, nil))
	})

	t.Run("total matches across source counts", func(t *testing.T) {
		sources := threeSources()
		for n := 1; n <= len(sources); n++ {
			lines := ProRata(777.77, sources[:n])
			assert.Equal(t, 777.77, AllocationTotal(lines))
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Run("last line absorbs the difference", func(t *testing.T) {
		lines := []models.AllocationLine{
			{SourceID: "src-pretax", Amount: 400},
			{SourceID: "src-roth", Amount: 250},
			{SourceID: "src-match", Amount: 0},
		}

		normalized := Normalize(lines, 1000)
		assert.Equal(t, 400.00, normalized[0].Amount)
		assert.Equal(t, 250.00, normalized[1].Amount)
		assert.Equal(t, 350.00, normalized[2].Amount)
		assert.Equal(t, 1000.00, AllocationTotal(normalized))

		assert.Equal(t, 40.00, normalized[0].Percentage)
		assert.Equal(t, 25.00, normalized[1].Percentage)
		assert.Equal(t, 35.00, normalized[2].Percentage)
	})

	t.Run("idempotent for an unchanged amount", func(t *testing.T) {
		lines := ProRata(1000, threeSources())
		once := Normalize(lines, 1000)
		twice := Normalize(once, 1000)
		assert.Equal(t, once, twice)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		lines := []models.AllocationLine{
			{SourceID: "src-pretax", Amount: 100},
			{SourceID: "src-roth", Amount: 100},
		}
		Normalize(lines, 1000)
		assert.Equal(t, 100.00, lines[1].Amount)
	})

	t.Run("last line shrinks when earlier lines grow", func(t *testing.T) {
		lines := []models.AllocationLine{
			{SourceID: "src-pretax", Amount: 900},
			{SourceID: "src-roth", Amount: 300},
		}
		normalized := Normalize(lines, 1000)
		assert.Equal(t, 100.00, normalized[1].Amount)
		assert.Equal(t, 1000.00, AllocationTotal(normalized))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Normalize(nil, 1000))
	})
}
