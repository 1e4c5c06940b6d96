package model

// RemittanceStatement is the working set for exporting one batch: the batch
// itself, the dealership it belongs to, and the member contracts resolved
// from ContractIDs.
type RemittanceStatement struct {
	Batch      Batch
	Dealership Dealership
	Contracts  []Contract
}

// ContractDocument is the working set for rendering one contract as a PDF.
type ContractDocument struct {
	Contract    Contract
	Dealership  Dealership
	ProductName string
}
