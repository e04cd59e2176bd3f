package soltx

import "fmt"

// compiledKeyMeta tracks the merged permissions of one account across all
// instructions that reference it.
type compiledKeyMeta struct {
	isSigner   bool
	isWritable bool
}

// CompiledKeys resolves the set of accounts referenced by a list of
// instructions into the ordered static key list and header of a message.
type CompiledKeys struct {
	orderedKeys []Pubkey
	keyMeta     map[Pubkey]compiledKeyMeta
}

// CompileKeys scans the instructions in order and merges the permissions of
// every referenced account. The fee payer seeds the scan as a writable
// signer so that it lands in position 0 of the static key list. Program IDs
// are collected in a second pass as readonly non-signers; a program that
// already appeared as an account keeps its accumulated permissions.
func CompileKeys(instructions []Instruction, feePayer Pubkey) *CompiledKeys {
	ck := &CompiledKeys{
		keyMeta: make(map[Pubkey]compiledKeyMeta),
	}
	ck.orderedKeys = append(ck.orderedKeys, feePayer)
	ck.keyMeta[feePayer] = compiledKeyMeta{isSigner: true, isWritable: true}

	for _, ix := range instructions {
		for _, acc := range ix.Accounts {
			meta, ok := ck.keyMeta[acc.Pubkey]
			if !ok {
				ck.orderedKeys = append(ck.orderedKeys, acc.Pubkey)
			}
			meta.isSigner = meta.isSigner || acc.IsSigner
			meta.isWritable = meta.isWritable || acc.IsWritable
			ck.keyMeta[acc.Pubkey] = meta
		}
	}
	for _, ix := range instructions {
		if _, ok := ck.keyMeta[ix.ProgramID]; !ok {
			ck.keyMeta[ix.ProgramID] = compiledKeyMeta{}
		}
		// Appended unconditionally; the partition keeps first occurrences.
		ck.orderedKeys = append(ck.orderedKeys, ix.ProgramID)
	}
	return ck
}

// MessageComponents partitions the resolved keys into the four
// header-dictated permission groups (writable signers, readonly signers,
// writable non-signers, readonly non-signers), preserving first-appearance
// order within each group, and derives the message header counts.
func (ck *CompiledKeys) MessageComponents() (MessageHeader, []Pubkey, error) {
	var groups [4][]Pubkey
	emitted := make(map[Pubkey]bool, len(ck.orderedKeys))
	for _, key := range ck.orderedKeys {
		if emitted[key] {
			continue
		}
		emitted[key] = true
		meta := ck.keyMeta[key]
		switch {
		case meta.isSigner && meta.isWritable:
			groups[0] = append(groups[0], key)
		case meta.isSigner:
			groups[1] = append(groups[1], key)
		case meta.isWritable:
			groups[2] = append(groups[2], key)
		default:
			groups[3] = append(groups[3], key)
		}
	}

	numSigners := len(groups[0]) + len(groups[1])
	total := numSigners + len(groups[2]) + len(groups[3])
	if numSigners > 0xff || len(groups[1]) > 0xff || len(groups[3]) > 0xff || total > 0x100 {
		return MessageHeader{}, nil, fmt.Errorf("%d accounts, %d signers: %w", total, numSigners, ErrTxTooBig)
	}

	header := MessageHeader{
		NumRequiredSignatures:       uint8(numSigners),
		NumReadonlySignedAccounts:   uint8(len(groups[1])),
		NumReadonlyUnsignedAccounts: uint8(len(groups[3])),
	}
	keys := make([]Pubkey, 0, total)
	keys = append(keys, groups[0]...)
	keys = append(keys, groups[1]...)
	keys = append(keys, groups[2]...)
	keys = append(keys, groups[3]...)
	return header, keys, nil
}

// CompileInstructions replaces every account and program reference with its
// index in the static key list, producing the compiled form carried by a
// message.
func CompileInstructions(instructions []Instruction, keys []Pubkey) ([]CompiledInstruction, error) {
	if len(keys) > 0x100 {
		return nil, fmt.Errorf("%d static keys: %w", len(keys), ErrTxTooBig)
	}
	index := make(map[Pubkey]uint8, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		index[keys[i]] = uint8(i)
	}
	compiled := make([]CompiledInstruction, len(instructions))
	for i, ix := range instructions {
		progIdx, ok := index[ix.ProgramID]
		if !ok {
			return nil, fmt.Errorf("program %s missing from static keys: %w", ix.ProgramID, ErrInternalEncoding)
		}
		accounts := make([]uint8, len(ix.Accounts))
		for j, acc := range ix.Accounts {
			accIdx, ok := index[acc.Pubkey]
			if !ok {
				return nil, fmt.Errorf("account %s missing from static keys: %w", acc.Pubkey, ErrInternalEncoding)
			}
			accounts[j] = accIdx
		}
		compiled[i] = CompiledInstruction{
			ProgramIDIndex: progIdx,
			Accounts:       accounts,
			Data:           ix.Data,
		}
	}
	return compiled, nil
}
