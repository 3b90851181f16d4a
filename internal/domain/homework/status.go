// internal/domain/homework/status.go
package homework

// Status is the review state reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// VerdictTable maps a review status to the text shown to the student.
// It is built once and never modified afterwards.
type VerdictTable struct {
	verdicts map[Status]string
}

// NewVerdictTable copies the given mapping so later changes to it are not visible.
func NewVerdictTable(verdicts map[Status]string) VerdictTable {
	cp := make(map[Status]string, len(verdicts))
	for status, text := range verdicts {
		cp[status] = text
	}
	return VerdictTable{verdicts: cp}
}

// DefaultVerdicts returns the verdicts for the three statuses the API knows about.
func DefaultVerdicts() VerdictTable {
	return NewVerdictTable(map[Status]string{
		StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
		StatusReviewing: "The work has been taken for review.",
		StatusRejected:  "The work has been reviewed: the reviewer has comments.",
	})
}

// Verdict looks up the text for status.
func (t VerdictTable) Verdict(status Status) (string, bool) {
	text, ok := t.verdicts[status]
	return text, ok
}
