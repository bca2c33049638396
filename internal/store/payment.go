package store

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentComplete PaymentStatus = "COMPLETE"
	PaymentFailed   PaymentStatus = "FAILED"
)

var validNext = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentPending:  {PaymentComplete: true, PaymentFailed: true},
	PaymentComplete: {},
	PaymentFailed:   {},
}

func (s PaymentStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition: COMPLETE dan FAILED itu terminal.
func CanTransition(from, to PaymentStatus) bool {
	return validNext[from][to]
}
