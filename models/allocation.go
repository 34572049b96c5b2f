package models

// AllocationMode represents how the loan amount is split across funding sources
type AllocationMode string

const (
	AllocationModeProRata AllocationMode = "pro_rata"
	AllocationModeCustom  AllocationMode = "custom"
)

// AllocationLine is one funding source's share of the loan amount
type AllocationLine struct {
	SourceID   string  `json:"source_id"`
	SourceName string  `json:"source_name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// FundingAllocation describes how the requested amount is drawn across the
// participant's holdings. TotalAllocated must equal the loan amount to the
// cent whenever the allocation stage is considered complete.
type FundingAllocation struct {
	Mode           AllocationMode   `json:"mode"`
	Lines          []AllocationLine `json:"lines"`
	TotalAllocated float64          `json:"total_allocated"`
}

// Line returns the allocation line for the given source, or nil
func (a *FundingAllocation) Line(sourceID string) *AllocationLine {
	for i := range a.Lines {
		if a.Lines[i].SourceID == sourceID {
			return &a.Lines[i]
		}
	}
	return nil
}
