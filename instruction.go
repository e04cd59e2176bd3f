package soltx

// AccountMeta describes an account referenced by an instruction. The order
// of metas within an instruction is program-defined and preserved verbatim
// through compilation.
type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction is a high-level instruction before account compilation.
type Instruction struct {
	ProgramID Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// WithReferences returns a copy of the instruction with each reference
// appended to its account list as a readonly non-signer.
func (ix Instruction) WithReferences(refs []Pubkey) Instruction {
	if len(refs) == 0 {
		return ix
	}
	accounts := make([]AccountMeta, 0, len(ix.Accounts)+len(refs))
	accounts = append(accounts, ix.Accounts...)
	for _, ref := range refs {
		accounts = append(accounts, AccountMeta{Pubkey: ref})
	}
	ix.Accounts = accounts
	return ix
}

// CompiledInstruction is an instruction with account references replaced by
// indices into the message's account key space.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// MemoInstruction returns a Memo Program invocation carrying the UTF-8 memo
// text. The memo instruction references no accounts.
func MemoInstruction(memo string) Instruction {
	return Instruction{
		ProgramID: MemoProgram,
		Data:      []byte(memo),
	}
}
