package domain

// CSA captures the Credit Support Annex terms the CCR module consults when
// adjusting PFE for collateral.
type CSA struct {
	CollateralHeld float64
	Threshold      float64
	MinTransferAmt float64
}

// Counterparty is referenced weakly (by ID lookup) from derivative
// positions; it owns no positions itself.
type Counterparty struct {
	ID             string
	Country        string
	ExternalRating string
	InternalRating string
	ISDANetting    bool
	CSA            CSA
}

// Seniority classifies a bond's claim ranking, used by the credit module's
// LGD table.
type Seniority string

const (
	SeniorSecured   Seniority = "SeniorSecured"
	SeniorUnsecured Seniority = "SeniorUnsecured"
	Subordinated    Seniority = "Subordinated"
)

// Issuer is the reference-data entity bond positions are weakly linked to
// via ISIN -> issuer lookup tables supplied by the host.
type Issuer struct {
	ID        string
	Country   string
	Sector    string
	Rating    string
	Seniority Seniority
}
