package domain

import "time"

// FeePaymentRecord is one FeePaid event read back from the chain.
type FeePaymentRecord struct {
	Student     string    `json:"student"`
	AmountEther string    `json:"amount_eth"`
	PaidAt      time.Time `json:"paid_at"`
	TxHash      string    `json:"tx_hash"`
	BlockNumber uint64    `json:"block_number"`
}

// ScholarshipApplication mirrors the Scholarship contract's application tuple.
type ScholarshipApplication struct {
	ID          uint64    `json:"id"`
	Student     string    `json:"student"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Year        uint64    `json:"year"`
	Reason      string    `json:"reason"`
	AmountEther string    `json:"amount_eth"`
	Approved    bool      `json:"approved"`
	Rejected    bool      `json:"rejected"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Status summarises the review state of an application.
func (a ScholarshipApplication) Status() string {
	switch {
	case a.Approved:
		return "approved"
	case a.Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Student is a registered student as reported by the registry contracts.
type Student struct {
	Address    string `json:"address"`
	Name       string `json:"name"`
	RollNo     string `json:"roll_no,omitempty"`
	Department string `json:"department"`
	Year       uint64 `json:"year,omitempty"`
	FeesPaid   string `json:"fees_paid_eth,omitempty"`
}

// Employee is a registered employee as reported by the registry contracts.
type Employee struct {
	Address    string `json:"address"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
}

// Transaction is a chain transaction touching an account.
type Transaction struct {
	Hash        string    `json:"hash"`
	From        string    `json:"from"`
	To          string    `json:"to,omitempty"`
	ValueEther  string    `json:"value_eth"`
	BlockNumber uint64    `json:"block_number"`
	Timestamp   time.Time `json:"timestamp"`
}

// CallRecord is the persisted outcome of one contract write.
type CallRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	From        string    `json:"from"`
	Contract    string    `json:"contract"`
	Method      string    `json:"method"`
	Kind        string    `json:"kind"`
	TxHash      string    `json:"tx_hash,omitempty"`
	BlockNumber uint64    `json:"block_number,omitempty"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
