package store

import "errors"

var (
	// ErrNotFound: resource yang diminta tidak ada.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput: input gagal validasi (cart kosong, id malformed, qty <= 0).
	ErrInvalidInput = errors.New("invalid input")

	// ErrProtected: delete ditolak karena masih direferensikan row lain.
	ErrProtected = errors.New("protected by existing references")
)
