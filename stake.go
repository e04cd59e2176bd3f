package soltx

import "encoding/binary"

// Stake Program instruction tags, little-endian u32 on the wire.
const (
	stakeInitialize uint32 = iota
	stakeAuthorize
	stakeDelegate
	stakeSplit
	stakeWithdraw
	stakeDeactivate
)

// stakeAccountSize is the size in bytes of an on-chain stake account.
const stakeAccountSize = 200

// InitializeStakeInstruction returns a Stake Program instruction
// initializing stakeAccount with the given staker and withdrawer
// authorities and an empty lockup.
func InitializeStakeInstruction(stakeAccount, staker, withdrawer Pubkey) Instruction {
	data := make([]byte, 0, 4+32+32+48)
	data = binary.LittleEndian.AppendUint32(data, stakeInitialize)
	data = append(data, staker[:]...)
	data = append(data, withdrawer[:]...)
	// Lockup: unix_timestamp i64, epoch u64, custodian pubkey, all zero.
	data = append(data, make([]byte, 48)...)
	return Instruction{
		ProgramID: StakeProgram,
		Accounts: []AccountMeta{
			{Pubkey: stakeAccount, IsWritable: true},
			{Pubkey: SysvarRent},
		},
		Data: data,
	}
}

// DelegateStakeInstruction returns a Stake Program instruction delegating
// stakeAccount to the validator vote account.
func DelegateStakeInstruction(stakeAccount, voteAccount, authority Pubkey) Instruction {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, stakeDelegate)
	return Instruction{
		ProgramID: StakeProgram,
		Accounts: []AccountMeta{
			{Pubkey: stakeAccount, IsWritable: true},
			{Pubkey: voteAccount},
			{Pubkey: SysvarClock},
			{Pubkey: SysvarStakeHistory},
			{Pubkey: StakeConfig},
			{Pubkey: authority, IsSigner: true},
		},
		Data: data,
	}
}

// DeactivateStakeInstruction returns a Stake Program instruction
// deactivating stakeAccount.
func DeactivateStakeInstruction(stakeAccount, authority Pubkey) Instruction {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, stakeDeactivate)
	return Instruction{
		ProgramID: StakeProgram,
		Accounts: []AccountMeta{
			{Pubkey: stakeAccount, IsWritable: true},
			{Pubkey: SysvarClock},
			{Pubkey: authority, IsSigner: true},
		},
		Data: data,
	}
}

// WithdrawStakeInstruction returns a Stake Program instruction withdrawing
// lamports from stakeAccount to recipient.
func WithdrawStakeInstruction(stakeAccount, recipient, authority Pubkey, lamports uint64) Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], stakeWithdraw)
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	return Instruction{
		ProgramID: StakeProgram,
		Accounts: []AccountMeta{
			{Pubkey: stakeAccount, IsWritable: true},
			{Pubkey: recipient, IsWritable: true},
			{Pubkey: SysvarClock},
			{Pubkey: SysvarStakeHistory},
			{Pubkey: authority, IsSigner: true},
		},
		Data: data,
	}
}
