package domain

// LedgerEntry is a user's accumulated reputation points. Balances only ever
// increase; satisfied feedback credits the requester, nothing decrements.
type LedgerEntry struct {
	User   UserID
	Points int
}

// SatisfiedFeedbackPoints is the credit applied to a requester's balance when
// they report satisfied feedback on a closed ticket.
const SatisfiedFeedbackPoints = 5
