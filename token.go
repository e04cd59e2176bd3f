package soltx

import "encoding/binary"

// Token Program instruction tag for TransferChecked, a single byte on the
// wire.
const tokenTransferChecked = 12

// TokenTransferCheckedInstruction returns a Token Program TransferChecked
// instruction moving amount base units between token accounts. The mint is
// referenced so the program can verify decimals.
func TokenTransferCheckedInstruction(tokenProgram, source, mint, destination, authority Pubkey, amount uint64, decimals uint8) Instruction {
	data := make([]byte, 10)
	data[0] = tokenTransferChecked
	binary.LittleEndian.PutUint64(data[1:9], amount)
	data[9] = decimals
	return Instruction{
		ProgramID: tokenProgram,
		Accounts: []AccountMeta{
			{Pubkey: source, IsWritable: true},
			{Pubkey: mint},
			{Pubkey: destination, IsWritable: true},
			{Pubkey: authority, IsSigner: true},
		},
		Data: data,
	}
}

// CreateAssociatedTokenAccountInstruction returns an Associated Token
// Account Program instruction creating the associated token account for
// (owner, mint), funded by funder. The instruction carries no data.
func CreateAssociatedTokenAccountInstruction(tokenProgram, funder, associatedAccount, owner, mint Pubkey) Instruction {
	return Instruction{
		ProgramID: AssociatedTokenProgram,
		Accounts: []AccountMeta{
			{Pubkey: funder, IsSigner: true, IsWritable: true},
			{Pubkey: associatedAccount, IsWritable: true},
			{Pubkey: owner},
			{Pubkey: mint},
			{Pubkey: SystemProgram},
			{Pubkey: tokenProgram},
			{Pubkey: SysvarRent},
		},
	}
}
