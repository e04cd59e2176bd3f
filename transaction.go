package soltx

import (
	"crypto/ed25519"
	"encoding"
	"errors"
	"fmt"
	"slices"
)

var _ = Transaction(&VersionedTransaction{})

// Transaction is the common interface for transactions that can be
// serialized to binary and produce a hash.
type Transaction interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Hash() ([]byte, error)
}

// VersionedTransaction couples the signature array with a legacy or v0
// message.
type VersionedTransaction struct {
	Signatures []Signature
	Message    VersionedMessage
}

// NewTransaction returns a transaction wrapping msg, with one zero
// placeholder signature per required signer.
func NewTransaction(msg VersionedMessage) *VersionedTransaction {
	return &VersionedTransaction{
		Signatures: make([]Signature, len(msg.SignerKeys())),
		Message:    msg,
	}
}

// Sign signs the transaction message with the provided Ed25519 private
// keys. Keys are matched to signature slots by their public key; slots
// without a matching key keep the zero placeholder so signatures can be
// collected across calls.
func (tx *VersionedTransaction) Sign(keys ...ed25519.PrivateKey) error {
	msgBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return err
	}

	signers := tx.Message.SignerKeys()
	for _, key := range keys {
		pub := key.Public().(ed25519.PublicKey)
		var pubKey Pubkey
		copy(pubKey[:], pub)

		idx := slices.Index(signers, pubKey)
		if idx < 0 || idx >= len(tx.Signatures) {
			return fmt.Errorf("key %s is not a required signer", pubKey)
		}
		copy(tx.Signatures[idx][:], ed25519.Sign(key, msgBytes))
	}
	return nil
}

// Hash returns the transaction ID, which is the first signature.
func (tx *VersionedTransaction) Hash() ([]byte, error) {
	if len(tx.Signatures) == 0 || tx.Signatures[0].IsZero() {
		return nil, errors.New("transaction has no signature")
	}
	return slices.Clone(tx.Signatures[0][:]), nil
}

// MarshalBinary serializes the transaction into the Solana wire format:
// the short-vec prefixed signatures followed by the message bytes.
func (tx *VersionedTransaction) MarshalBinary() ([]byte, error) {
	msgBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}

	buf := AppendShortVec(nil, len(tx.Signatures))
	for _, sig := range tx.Signatures {
		buf = append(buf, sig[:]...)
	}
	buf = append(buf, msgBytes...)
	return buf, nil
}

// UnmarshalBinary deserializes a transaction from the Solana wire format,
// rejecting trailing bytes.
func (tx *VersionedTransaction) UnmarshalBinary(data []byte) error {
	r := &byteReader{buf: data}

	sigCount := r.readShortVec()
	if r.err != nil {
		return fmt.Errorf("reading signature count: %w", r.err)
	}
	tx.Signatures = make([]Signature, sigCount)
	for i := range tx.Signatures {
		tx.Signatures[i] = r.read64()
	}

	tx.Message = decodeVersionedMessage(r)
	if r.err != nil {
		return fmt.Errorf("reading message: %w", r.err)
	}
	if r.remaining() != 0 {
		return fmt.Errorf("transaction has %d trailing bytes", r.remaining())
	}
	return nil
}
