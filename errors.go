package soltx

import "errors"

// Error kinds surfaced by the signing core. Call sites wrap these with
// fmt.Errorf("...: %w", err) so callers can match them with errors.Is.
var (
	// ErrTxTooBig means a header count or account index would overflow u8.
	ErrTxTooBig = errors.New("transaction references too many accounts")
	// ErrInvalidAddress means a base58 address failed to decode to 32 bytes.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidBlockhash means a base58 blockhash failed to decode to 32 bytes.
	ErrInvalidBlockhash = errors.New("invalid blockhash")
	// ErrInvalidPrivateKey means the private key has a bad length or an
	// inconsistent public half.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrInvalidInput means a field required by the requested transaction
	// type is missing or inconsistent.
	ErrInvalidInput = errors.New("invalid signing input")
	// ErrInternalEncoding means serialization produced bytes that would not
	// round-trip.
	ErrInternalEncoding = errors.New("serialization would not round-trip")
)
