package soltx_test

import (
	"testing"

	"github.com/ModChain/soltx"
)

// numberedKey returns a synthetic distinct pubkey for test instruction
// lists.
func numberedKey(i int) soltx.Pubkey {
	var k soltx.Pubkey
	k[0] = byte(i)
	k[1] = byte(i >> 8)
	k[31] = 0x7e
	return k
}

func TestCompileKeysPartition(t *testing.T) {
	payer := numberedKey(1)
	readonlySigner := numberedKey(2)
	writable := numberedKey(3)
	readonly := numberedKey(4)
	program := numberedKey(5)

	ixs := []soltx.Instruction{
		{
			ProgramID: program,
			Accounts: []soltx.AccountMeta{
				{Pubkey: readonly},
				{Pubkey: writable, IsWritable: true},
				{Pubkey: readonlySigner, IsSigner: true},
			},
		},
		{
			ProgramID: program, // duplicate program id on purpose
			Accounts: []soltx.AccountMeta{
				// Same account again with fewer permissions; the merge must
				// keep the stronger flags.
				{Pubkey: writable},
			},
		},
	}

	header, keys, err := soltx.CompileKeys(ixs, payer).MessageComponents()
	if err != nil {
		t.Fatalf("MessageComponents failed: %s", err)
	}
	want := []soltx.Pubkey{payer, readonlySigner, writable, readonly, program}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %s, want %s", i, keys[i], k)
		}
	}
	if header.NumRequiredSignatures != 2 || header.NumReadonlySignedAccounts != 1 || header.NumReadonlyUnsignedAccounts != 2 {
		t.Errorf("unexpected header: %+v", header)
	}
}

func TestCompileKeysMergesPermissions(t *testing.T) {
	payer := numberedKey(1)
	acct := numberedKey(2)
	program := numberedKey(9)

	// The same account appears readonly first, then as a writable signer;
	// accumulated flags decide its group.
	ixs := []soltx.Instruction{
		{ProgramID: program, Accounts: []soltx.AccountMeta{{Pubkey: acct}}},
		{ProgramID: program, Accounts: []soltx.AccountMeta{{Pubkey: acct, IsSigner: true, IsWritable: true}}},
	}
	header, keys, err := soltx.CompileKeys(ixs, payer).MessageComponents()
	if err != nil {
		t.Fatalf("MessageComponents failed: %s", err)
	}
	if header.NumRequiredSignatures != 2 {
		t.Errorf("account with accumulated signer flag not counted: %+v", header)
	}
	if keys[1] != acct {
		t.Errorf("accumulated writable signer should sort into the signer group, got order %v", keys)
	}
}

func TestCompileKeysProgramKeepsAccountFlags(t *testing.T) {
	payer := numberedKey(1)
	dual := numberedKey(2) // used both as a writable account and a program

	ixs := []soltx.Instruction{
		{ProgramID: dual, Accounts: []soltx.AccountMeta{{Pubkey: dual, IsWritable: true}}},
	}
	header, keys, err := soltx.CompileKeys(ixs, payer).MessageComponents()
	if err != nil {
		t.Fatalf("MessageComponents failed: %s", err)
	}
	// The program-id pass must not demote the account to readonly.
	if header.NumReadonlyUnsignedAccounts != 0 {
		t.Errorf("program id pass overwrote account flags: %+v", header)
	}
	if len(keys) != 2 || keys[1] != dual {
		t.Errorf("unexpected key order: %v", keys)
	}
}

func TestCompileKeysTooBig(t *testing.T) {
	payer := numberedKey(0)
	program := numberedKey(1000)
	ix := soltx.Instruction{ProgramID: program}
	for i := 1; i <= 300; i++ {
		ix.Accounts = append(ix.Accounts, soltx.AccountMeta{Pubkey: numberedKey(i), IsWritable: true})
	}
	_, _, err := soltx.CompileKeys([]soltx.Instruction{ix}, payer).MessageComponents()
	if err == nil {
		t.Fatal("expected ErrTxTooBig")
	}
}

func TestCompileInstructions(t *testing.T) {
	from := b58key("zVSpQnbBZ7dyUWzXhrUQRsTYYNzoAdJWHsHSqhPj3Xu")
	to := b58key("71e8mDsh3PR6gN64zL1HjwuxyKpgRXrPDUJT7XXojsVd")
	ixs := []soltx.Instruction{soltx.TransferInstruction(from, to, 42)}

	_, keys, err := soltx.CompileKeys(ixs, from).MessageComponents()
	if err != nil {
		t.Fatalf("MessageComponents failed: %s", err)
	}
	compiled, err := soltx.CompileInstructions(ixs, keys)
	if err != nil {
		t.Fatalf("CompileInstructions failed: %s", err)
	}
	if len(compiled) != 1 {
		t.Fatalf("got %d instructions", len(compiled))
	}
	ci := compiled[0]
	if int(ci.ProgramIDIndex) != len(keys)-1 {
		t.Errorf("program index %d, want %d", ci.ProgramIDIndex, len(keys)-1)
	}
	if len(ci.Accounts) != 2 || ci.Accounts[0] != 0 || ci.Accounts[1] != 1 {
		t.Errorf("unexpected account indices: %v", ci.Accounts)
	}
}
