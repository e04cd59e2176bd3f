package soltx

import (
	"fmt"

	"github.com/ModChain/base58"
)

// Pubkey is a 32-byte public key used to identify accounts and programs on
// the Solana network.
type Pubkey [32]byte

func mustParsePubkey(s string) Pubkey {
	k, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// ParsePubkey parses a base58-encoded string into a Pubkey.
func ParsePubkey(s string) (Pubkey, error) {
	buf, err := base58.Bitcoin.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode pubkey: %w", ErrInvalidAddress)
	}
	if len(buf) != 32 {
		return Pubkey{}, fmt.Errorf("expected 32 bytes, got %d: %w", len(buf), ErrInvalidAddress)
	}
	var k Pubkey
	copy(k[:], buf)
	return k, nil
}

// String returns the base58 encoding of the key.
func (k Pubkey) String() string {
	return base58.Bitcoin.Encode(k[:])
}

// IsZero reports whether the key is all zeros.
func (k Pubkey) IsZero() bool {
	return k == Pubkey{}
}

// Blockhash is a 32-byte identifier of a recent block, used to bound the
// lifetime of a transaction. Opaque to this package.
type Blockhash [32]byte

// ParseBlockhash parses a base58-encoded string into a Blockhash.
func ParseBlockhash(s string) (Blockhash, error) {
	buf, err := base58.Bitcoin.Decode(s)
	if err != nil {
		return Blockhash{}, fmt.Errorf("failed to decode blockhash: %w", ErrInvalidBlockhash)
	}
	if len(buf) != 32 {
		return Blockhash{}, fmt.Errorf("expected 32 bytes, got %d: %w", len(buf), ErrInvalidBlockhash)
	}
	var h Blockhash
	copy(h[:], buf)
	return h, nil
}

// String returns the base58 encoding of the blockhash.
func (h Blockhash) String() string {
	return base58.Bitcoin.Encode(h[:])
}

// Signature is a 64-byte Ed25519 signature. The zero value is the
// placeholder used for signature slots that have not been signed yet.
type Signature [64]byte

// IsZero reports whether the signature is the all-zero placeholder.
func (s Signature) IsZero() bool {
	return s == Signature{}
}

// String returns the base58 encoding of the signature.
func (s Signature) String() string {
	return base58.Bitcoin.Encode(s[:])
}
