package store

import "fmt"

// RefKind adalah target dari tag/like. Enum tertutup, bukan reference bebas:
// tiap kind dipetakan ke satu tabel.
type RefKind string

const (
	KindProduct    RefKind = "product"
	KindCollection RefKind = "collection"
	KindCustomer   RefKind = "customer"
	KindOrder      RefKind = "order"
)

func ParseRefKind(s string) (RefKind, error) {
	switch RefKind(s) {
	case KindProduct, KindCollection, KindCustomer, KindOrder:
		return RefKind(s), nil
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, s)
}
