package soltx

// Well-known program and sysvar addresses referenced by the instruction
// builders.
var (
	// SystemProgram is the address of the System Program.
	SystemProgram = mustParsePubkey("11111111111111111111111111111111")
	// TokenProgram is the address of the SPL Token Program.
	TokenProgram = mustParsePubkey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	// Token2022Program is the address of the SPL Token-2022 Program.
	Token2022Program = mustParsePubkey("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	// AssociatedTokenProgram is the address of the SPL Associated Token
	// Account Program.
	AssociatedTokenProgram = mustParsePubkey("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	// StakeProgram is the address of the Stake Program.
	StakeProgram = mustParsePubkey("Stake11111111111111111111111111111111111111")
	// ComputeBudgetProgram is the address of the Compute Budget Program.
	ComputeBudgetProgram = mustParsePubkey("ComputeBudget111111111111111111111111111111")
	// MemoProgram is the address of the SPL Memo Program.
	MemoProgram = mustParsePubkey("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

	// SysvarRent is the rent sysvar account.
	SysvarRent = mustParsePubkey("SysvarRent111111111111111111111111111111111")
	// SysvarClock is the clock sysvar account.
	SysvarClock = mustParsePubkey("SysvarC1ock11111111111111111111111111111111")
	// SysvarStakeHistory is the stake history sysvar account.
	SysvarStakeHistory = mustParsePubkey("SysvarStakeHistory1111111111111111111111111")
	// SysvarRecentBlockhashes is the recent blockhashes sysvar account,
	// referenced by nonce advances.
	SysvarRecentBlockhashes = mustParsePubkey("SysvarRecentB1ockHashes11111111111111111111")
	// StakeConfig is the stake config account referenced by delegations.
	StakeConfig = mustParsePubkey("StakeConfig11111111111111111111111111111111")
)
