package models

// Role identifies the submitter of a claim document.
type Role string

const (
	RoleClaimant      Role = "claimant"
	RoleDealer        Role = "dealer"
	RoleServiceCenter Role = "service_center"
)

// ClaimStatus is the status recorded in the claim document.
type ClaimStatus string

const (
	ClaimStatusApproved ClaimStatus = "Approved"
	ClaimStatusRejected ClaimStatus = "Rejected"
	ClaimStatusPending  ClaimStatus = "Pending"
)

// ClaimRecord holds the structured claim fields extracted from a claim
// document. The JSON keys mirror the field names the extraction prompt asks
// for. VehicleInfo is populated for claimant documents, Location for dealer
// and service-center documents. ClaimDate is kept as extracted; the source
// format varies (free text or "YYYY:MM:DD") and is normalized only at the
// point of comparison. A record is immutable once produced.
type ClaimRecord struct {
	Name         string      `json:"Name"`
	Role         Role        `json:"-"`
	VehicleInfo  string      `json:"Vehicle Info,omitempty"`
	Location     string      `json:"Location,omitempty"`
	ClaimStatus  ClaimStatus `json:"Claim Status"`
	ClaimDate    string      `json:"Claim Date"`
	Reason       string      `json:"Reason,omitempty"`
	ItemsCovered string      `json:"Items Covered"`
}
