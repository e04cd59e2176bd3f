package soltx

import (
	"encoding"
	"fmt"
)

// messageVersionFlag marks the first byte of a versioned message; the low 7
// bits carry the version number. Legacy messages never set this bit since
// their first byte is the required-signature count.
const messageVersionFlag = 0x80

// MessageHeader contains the counts that split the static account keys into
// the four permission groups.
type MessageHeader struct {
	// NumRequiredSignatures is the number of signatures required for the
	// message to be valid. The signers are the first NumRequiredSignatures
	// entries of the static account keys.
	NumRequiredSignatures uint8
	// NumReadonlySignedAccounts is the number of readonly accounts at the
	// end of the signed keys.
	NumReadonlySignedAccounts uint8
	// NumReadonlyUnsignedAccounts is the number of readonly accounts at the
	// end of the unsigned keys.
	NumReadonlyUnsignedAccounts uint8
}

// VersionedMessage is a legacy or v0 message. Implementations serialize to
// the exact bytes the Solana runtime hashes and signs.
type VersionedMessage interface {
	encoding.BinaryMarshaler
	// SignerKeys returns the static keys whose signatures the message
	// requires, in signature-slot order.
	SignerKeys() []Pubkey
}

var (
	_ = VersionedMessage(&LegacyMessage{})
	_ = VersionedMessage(&MessageV0{})
)

// LegacyMessage is the unversioned message format.
type LegacyMessage struct {
	Header          MessageHeader
	AccountKeys     []Pubkey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

// SignerKeys returns the first NumRequiredSignatures account keys.
func (msg *LegacyMessage) SignerKeys() []Pubkey {
	n := int(msg.Header.NumRequiredSignatures)
	if n > len(msg.AccountKeys) {
		n = len(msg.AccountKeys)
	}
	return msg.AccountKeys[:n]
}

// appendBody appends the legacy wire layout shared by both formats: header,
// account keys, blockhash and compiled instructions.
func (msg *LegacyMessage) appendBody(buf []byte) []byte {
	buf = append(buf,
		msg.Header.NumRequiredSignatures,
		msg.Header.NumReadonlySignedAccounts,
		msg.Header.NumReadonlyUnsignedAccounts,
	)
	buf = AppendShortVec(buf, len(msg.AccountKeys))
	for _, key := range msg.AccountKeys {
		buf = append(buf, key[:]...)
	}
	buf = append(buf, msg.RecentBlockhash[:]...)
	buf = AppendShortVec(buf, len(msg.Instructions))
	for _, ix := range msg.Instructions {
		buf = append(buf, ix.ProgramIDIndex)
		buf = AppendShortVec(buf, len(ix.Accounts))
		buf = append(buf, ix.Accounts...)
		buf = AppendShortVec(buf, len(ix.Data))
		buf = append(buf, ix.Data...)
	}
	return buf
}

func (msg *LegacyMessage) decodeBody(r *byteReader) {
	msg.Header.NumRequiredSignatures = r.readByte()
	msg.Header.NumReadonlySignedAccounts = r.readByte()
	msg.Header.NumReadonlyUnsignedAccounts = r.readByte()

	keyCount := r.readShortVec()
	if r.err != nil {
		return
	}
	msg.AccountKeys = make([]Pubkey, keyCount)
	for i := range msg.AccountKeys {
		msg.AccountKeys[i] = r.read32()
	}
	msg.RecentBlockhash = r.read32()

	ixCount := r.readShortVec()
	if r.err != nil {
		return
	}
	msg.Instructions = make([]CompiledInstruction, ixCount)
	for i := range msg.Instructions {
		msg.Instructions[i].ProgramIDIndex = r.readByte()
		msg.Instructions[i].Accounts = r.readBytes(r.readShortVec())
		msg.Instructions[i].Data = r.readBytes(r.readShortVec())
	}
}

// MarshalBinary serializes the message into the Solana wire format.
func (msg *LegacyMessage) MarshalBinary() ([]byte, error) {
	return msg.appendBody(nil), nil
}

// UnmarshalBinary deserializes a legacy message, rejecting trailing bytes.
func (msg *LegacyMessage) UnmarshalBinary(data []byte) error {
	r := &byteReader{buf: data}
	msg.decodeBody(r)
	if r.err != nil {
		return fmt.Errorf("reading legacy message: %w", r.err)
	}
	if r.remaining() != 0 {
		return fmt.Errorf("legacy message has %d trailing bytes", r.remaining())
	}
	return nil
}

// Validate checks that every instruction index points inside the static key
// list.
func (msg *LegacyMessage) Validate() error {
	return validateIndices(msg.Instructions, len(msg.AccountKeys), len(msg.AccountKeys))
}

// MessageAddressTableLookup references addresses stored in an on-chain
// address lookup table by index.
type MessageAddressTableLookup struct {
	AccountKey      Pubkey
	WritableIndexes []uint8
	ReadonlyIndexes []uint8
}

// MessageV0 extends the legacy layout with address table lookups. The
// effective key space seen by instruction indices is the static keys,
// followed by all writable lookup slots, followed by all readonly lookup
// slots.
type MessageV0 struct {
	LegacyMessage
	AddressTableLookups []MessageAddressTableLookup
}

// NumWritableLookups returns the number of writable accounts loaded through
// lookup tables.
func (msg *MessageV0) NumWritableLookups() int {
	count := 0
	for _, lookup := range msg.AddressTableLookups {
		count += len(lookup.WritableIndexes)
	}
	return count
}

// NumLookups returns the total number of accounts loaded through lookup
// tables.
func (msg *MessageV0) NumLookups() int {
	count := msg.NumWritableLookups()
	for _, lookup := range msg.AddressTableLookups {
		count += len(lookup.ReadonlyIndexes)
	}
	return count
}

// MarshalBinary serializes the message into the Solana wire format,
// including the version prefix byte.
func (msg *MessageV0) MarshalBinary() ([]byte, error) {
	buf := []byte{messageVersionFlag}
	buf = msg.appendBody(buf)
	buf = AppendShortVec(buf, len(msg.AddressTableLookups))
	for _, lookup := range msg.AddressTableLookups {
		buf = append(buf, lookup.AccountKey[:]...)
		buf = AppendShortVec(buf, len(lookup.WritableIndexes))
		buf = append(buf, lookup.WritableIndexes...)
		buf = AppendShortVec(buf, len(lookup.ReadonlyIndexes))
		buf = append(buf, lookup.ReadonlyIndexes...)
	}
	return buf, nil
}

func (msg *MessageV0) decode(r *byteReader) {
	if b := r.readByte(); r.err == nil && b != messageVersionFlag {
		r.err = fmt.Errorf("unsupported message version prefix 0x%02x", b)
		return
	}
	msg.decodeBody(r)
	lookupCount := r.readShortVec()
	if r.err != nil {
		return
	}
	msg.AddressTableLookups = make([]MessageAddressTableLookup, lookupCount)
	for i := range msg.AddressTableLookups {
		msg.AddressTableLookups[i].AccountKey = r.read32()
		msg.AddressTableLookups[i].WritableIndexes = r.readBytes(r.readShortVec())
		msg.AddressTableLookups[i].ReadonlyIndexes = r.readBytes(r.readShortVec())
	}
}

// UnmarshalBinary deserializes a v0 message including its version prefix,
// rejecting trailing bytes.
func (msg *MessageV0) UnmarshalBinary(data []byte) error {
	r := &byteReader{buf: data}
	msg.decode(r)
	if r.err != nil {
		return fmt.Errorf("reading v0 message: %w", r.err)
	}
	if r.remaining() != 0 {
		return fmt.Errorf("v0 message has %d trailing bytes", r.remaining())
	}
	return nil
}

// Validate checks that program indices point inside the static keys and
// account indices inside the effective key space.
func (msg *MessageV0) Validate() error {
	return validateIndices(msg.Instructions, len(msg.AccountKeys), len(msg.AccountKeys)+msg.NumLookups())
}

func validateIndices(instructions []CompiledInstruction, numStatic, numTotal int) error {
	for i, ix := range instructions {
		if int(ix.ProgramIDIndex) >= numStatic {
			return fmt.Errorf("instruction %d: program index %d out of range: %w", i, ix.ProgramIDIndex, ErrTxTooBig)
		}
		for _, acc := range ix.Accounts {
			if int(acc) >= numTotal {
				return fmt.Errorf("instruction %d: account index %d out of range: %w", i, acc, ErrTxTooBig)
			}
		}
	}
	return nil
}

// decodeVersionedMessage routes to the legacy or v0 decoder based on the
// version marker bit of the next byte.
func decodeVersionedMessage(r *byteReader) VersionedMessage {
	b := r.peekByte()
	if r.err != nil {
		return nil
	}
	if b&messageVersionFlag != 0 {
		if b != messageVersionFlag {
			r.err = fmt.Errorf("unsupported message version %d", b&0x7f)
			return nil
		}
		msg := new(MessageV0)
		msg.decode(r)
		return msg
	}
	msg := new(LegacyMessage)
	msg.decodeBody(r)
	return msg
}

// ParseVersionedMessage deserializes a message of either format, rejecting
// trailing bytes.
func ParseVersionedMessage(data []byte) (VersionedMessage, error) {
	r := &byteReader{buf: data}
	msg := decodeVersionedMessage(r)
	if r.err != nil {
		return nil, fmt.Errorf("reading message: %w", r.err)
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("message has %d trailing bytes", r.remaining())
	}
	return msg, nil
}
