package models

import "time"

// Document types the compliance stage can require
const (
	DocTypeLoanAgreement     = "loan_agreement"
	DocTypePurchaseAgreement = "purchase_agreement"
	DocTypeEnrollmentProof   = "enrollment_proof"
	DocTypeHardshipEvidence  = "hardship_evidence"
	DocTypeSpousalConsent    = "spousal_consent"
)

// Acknowledgment flag names
const (
	AckTerms      = "terms"
	AckDisclosure = "disclosure"
)

// DocumentMeta records metadata about an uploaded document. File contents are
// never stored.
type DocumentMeta struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ComplianceRecord holds the uploaded-document descriptors and the named
// acknowledgment flags for an application
type ComplianceRecord struct {
	Documents       []DocumentMeta  `json:"documents"`
	Acknowledgments map[string]bool `json:"acknowledgments"`
}

// HasDocument checks whether a document of the given type has been uploaded
func (c *ComplianceRecord) HasDocument(docType string) bool {
	for _, doc := range c.Documents {
		if doc.Type == docType {
			return true
		}
	}
	return false
}

// Acknowledged checks whether the named acknowledgment flag is set
func (c *ComplianceRecord) Acknowledged(name string) bool {
	return c.Acknowledgments[name]
}
