package model

import "time"

// Contract document statuses.  The contract track is independent of
// the docket completion gate.
const (
	ContractPending  = "PENDING"
	ContractSigned   = "SIGNED"
	ContractRejected = "REJECTED"
)

// ValidContractStatus reports whether s is one of the known statuses.
func ValidContractStatus(s string) bool {
	return s == ContractPending || s == ContractSigned || s == ContractRejected
}

// Contract tracks company-contract and job-offer document status for
// one candidate, one-to-one with User.
//
// Fields:
//  ID                    – primary key identifier.
//  UserID                – owning candidate.
//  CompanyContractStatus – PENDING | SIGNED | REJECTED.
//  JobOfferStatus        – PENDING | SIGNED | REJECTED.
//  UpdatedAt             – last update timestamp.
type Contract struct {
	ID                    uint64    // contracts.id
	UserID                uint64    // contracts.user_id
	CompanyContractStatus string    // contracts.company_contract_status
	JobOfferStatus        string    // contracts.job_offer_status
	UpdatedAt             time.Time // contracts.updated_at
}
