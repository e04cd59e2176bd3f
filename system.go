package soltx

import "encoding/binary"

// System Program instruction tags, little-endian u32 on the wire.
const (
	sysCreateAccount uint32 = iota
	sysAssign
	sysTransfer
	sysCreateAccountWithSeed
	sysAdvanceNonceAccount
	sysWithdrawNonceAccount
	sysInitializeNonceAccount
)

// TransferInstruction returns a System Program transfer instruction that
// moves lamports from one account to another.
func TransferInstruction(from, to Pubkey, lamports uint64) Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], sysTransfer)
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	return Instruction{
		ProgramID: SystemProgram,
		Accounts: []AccountMeta{
			{Pubkey: from, IsSigner: true, IsWritable: true},
			{Pubkey: to, IsWritable: true},
		},
		Data: data,
	}
}

// CreateAccountWithSeedInstruction returns a System Program instruction
// creating newAccount at the address derived from base and seed, funded
// with lamports and owned by owner. The base key co-signs even when it
// equals the funder.
func CreateAccountWithSeedInstruction(from, newAccount, base Pubkey, seed string, lamports, space uint64, owner Pubkey) Instruction {
	data := make([]byte, 0, 4+32+8+len(seed)+8+8+32)
	data = binary.LittleEndian.AppendUint32(data, sysCreateAccountWithSeed)
	data = append(data, base[:]...)
	data = binary.LittleEndian.AppendUint64(data, uint64(len(seed)))
	data = append(data, seed...)
	data = binary.LittleEndian.AppendUint64(data, lamports)
	data = binary.LittleEndian.AppendUint64(data, space)
	data = append(data, owner[:]...)
	return Instruction{
		ProgramID: SystemProgram,
		Accounts: []AccountMeta{
			{Pubkey: from, IsSigner: true, IsWritable: true},
			{Pubkey: newAccount, IsWritable: true},
			{Pubkey: base, IsSigner: true},
		},
		Data: data,
	}
}

// AdvanceNonceInstruction returns a System Program instruction consuming
// the durable nonce stored in nonceAccount.
func AdvanceNonceInstruction(nonceAccount, authority Pubkey) Instruction {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, sysAdvanceNonceAccount)
	return Instruction{
		ProgramID: SystemProgram,
		Accounts: []AccountMeta{
			{Pubkey: nonceAccount, IsWritable: true},
			{Pubkey: SysvarRecentBlockhashes},
			{Pubkey: authority, IsSigner: true},
		},
		Data: data,
	}
}
