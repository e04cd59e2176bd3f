// Package soltx builds, signs and encodes Solana transactions.
//
// The package covers the System, SPL Token, Associated Token Account,
// Stake, Memo and Compute Budget programs, compiles high-level
// instructions into legacy or v0 messages with the account ordering the
// runtime expects, and signs the resulting message bytes with Ed25519.
// Messages and transactions round-trip byte-for-byte through their
// binary codecs. Everything is stateless; concurrent calls need no
// coordination.
package soltx

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strconv"

	"github.com/ModChain/base58"
)

// SigningInput is a high-level signing request: one operation, signed by a
// single key, bound to a recent blockhash.
type SigningInput struct {
	// PrivateKey is the Ed25519 key material: a 32-byte seed, or the
	// 64-byte seed-plus-public-key form used by Solana keypair files.
	PrivateKey []byte
	// RecentBlockhash is the base58 blockhash bounding the transaction
	// lifetime. With a durable nonce it carries the nonce value instead.
	RecentBlockhash string
	// V0Message selects the v0 message format instead of legacy.
	V0Message bool
	// NonceAccount, when set, prepends an AdvanceNonceAccount instruction
	// consuming the durable nonce held in that account.
	NonceAccount string
	// PriorityFeePrice, when set, prepends a SetComputeUnitPrice
	// instruction (micro-lamports per compute unit).
	PriorityFeePrice *uint64
	// PriorityFeeLimit, when set, prepends a SetComputeUnitLimit
	// instruction.
	PriorityFeeLimit *uint32
	// TransactionType selects the operation to perform.
	TransactionType TransactionType
}

// SigningOutput is the result of a signing call.
type SigningOutput struct {
	// Encoded is the base58 encoding of the full signed transaction.
	Encoded string
	// UnsignedTx is the base58 encoding of the message bytes that were
	// signed.
	UnsignedTx string
	// Signatures holds one entry per required signer. Slots for signers
	// whose key material was unavailable keep the zero placeholder.
	Signatures []Signature
}

// TransactionType is the union of operations a signing request can carry.
// The concrete types are Transfer, TokenTransfer, CreateTokenAccount,
// CreateAndTransferToken, DelegateStake, DeactivateStake,
// DeactivateAllStake, WithdrawStake and WithdrawAllStake.
type TransactionType interface {
	buildInstructions(b *txBuilder) error
}

// txBuilder accumulates the instruction list for one signing request.
type txBuilder struct {
	signer            Pubkey
	ixs               []Instruction
	stakeAccountIndex int
}

func (b *txBuilder) add(ix Instruction) {
	b.ixs = append(b.ixs, ix)
}

func (b *txBuilder) addMemo(memo string) {
	if memo != "" {
		b.add(MemoInstruction(memo))
	}
}

// nextStakeSeed returns the seed for the next stake account derived in this
// request: "stake:0", "stake:1", ...
func (b *txBuilder) nextStakeSeed() string {
	seed := "stake:" + strconv.Itoa(b.stakeAccountIndex)
	b.stakeAccountIndex++
	return seed
}

func parseReferences(refs []string) ([]Pubkey, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]Pubkey, len(refs))
	for i, ref := range refs {
		k, err := ParsePubkey(ref)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %w", i, err)
		}
		out[i] = k
	}
	return out, nil
}

// parseTokenProgram resolves an optional token program override, defaulting
// to the classic Token Program.
func parseTokenProgram(s string) (Pubkey, error) {
	if s == "" {
		return TokenProgram, nil
	}
	return ParsePubkey(s)
}

// Transfer moves lamports to a recipient.
type Transfer struct {
	Recipient  string
	Value      uint64
	Memo       string
	References []string
}

func (t Transfer) buildInstructions(b *txBuilder) error {
	to, err := ParsePubkey(t.Recipient)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	refs, err := parseReferences(t.References)
	if err != nil {
		return err
	}
	b.addMemo(t.Memo)
	b.add(TransferInstruction(b.signer, to, t.Value).WithReferences(refs))
	return nil
}

// TokenTransfer moves SPL token units between existing token accounts.
type TokenTransfer struct {
	TokenMintAddress      string
	SenderTokenAddress    string
	RecipientTokenAddress string
	Amount                uint64
	Decimals              uint8
	Memo                  string
	References            []string
	// TokenProgram optionally overrides the token program (Token-2022).
	TokenProgram string
}

func (t TokenTransfer) buildInstructions(b *txBuilder) error {
	mint, err := ParsePubkey(t.TokenMintAddress)
	if err != nil {
		return fmt.Errorf("token mint: %w", err)
	}
	source, err := ParsePubkey(t.SenderTokenAddress)
	if err != nil {
		return fmt.Errorf("sender token address: %w", err)
	}
	destination, err := ParsePubkey(t.RecipientTokenAddress)
	if err != nil {
		return fmt.Errorf("recipient token address: %w", err)
	}
	tokenProgram, err := parseTokenProgram(t.TokenProgram)
	if err != nil {
		return fmt.Errorf("token program: %w", err)
	}
	refs, err := parseReferences(t.References)
	if err != nil {
		return err
	}
	b.addMemo(t.Memo)
	b.add(TokenTransferCheckedInstruction(tokenProgram, source, mint, destination, b.signer, t.Amount, t.Decimals).WithReferences(refs))
	return nil
}

// CreateTokenAccount creates the associated token account for an owner and
// mint, funded by the signer.
type CreateTokenAccount struct {
	// MainAddress is the owner of the new associated account.
	MainAddress      string
	TokenMintAddress string
	// TokenAddress is optional; when set it is verified against the derived
	// associated token address.
	TokenAddress string
	TokenProgram string
}

func (t CreateTokenAccount) buildInstructions(b *txBuilder) error {
	owner, err := ParsePubkey(t.MainAddress)
	if err != nil {
		return fmt.Errorf("main address: %w", err)
	}
	mint, err := ParsePubkey(t.TokenMintAddress)
	if err != nil {
		return fmt.Errorf("token mint: %w", err)
	}
	tokenProgram, err := parseTokenProgram(t.TokenProgram)
	if err != nil {
		return fmt.Errorf("token program: %w", err)
	}
	derived, err := verifiedTokenAddress(owner, mint, tokenProgram, t.TokenAddress)
	if err != nil {
		return err
	}
	b.add(CreateAssociatedTokenAccountInstruction(tokenProgram, b.signer, derived, owner, mint))
	return nil
}

// CreateAndTransferToken creates the recipient's associated token account
// and transfers token units to it in one transaction.
type CreateAndTransferToken struct {
	RecipientMainAddress string
	TokenMintAddress     string
	// SenderTokenAddress is optional; derived from the signer when empty.
	SenderTokenAddress string
	// RecipientTokenAddress is optional; when set it is verified against
	// the derived associated token address.
	RecipientTokenAddress string
	Amount                uint64
	Decimals              uint8
	Memo                  string
	References            []string
	TokenProgram          string
}

func (t CreateAndTransferToken) buildInstructions(b *txBuilder) error {
	recipient, err := ParsePubkey(t.RecipientMainAddress)
	if err != nil {
		return fmt.Errorf("recipient main address: %w", err)
	}
	mint, err := ParsePubkey(t.TokenMintAddress)
	if err != nil {
		return fmt.Errorf("token mint: %w", err)
	}
	tokenProgram, err := parseTokenProgram(t.TokenProgram)
	if err != nil {
		return fmt.Errorf("token program: %w", err)
	}
	recipientToken, err := verifiedTokenAddress(recipient, mint, tokenProgram, t.RecipientTokenAddress)
	if err != nil {
		return err
	}
	var senderToken Pubkey
	if t.SenderTokenAddress == "" {
		senderToken, err = AssociatedTokenAddress(b.signer, mint, tokenProgram)
	} else {
		senderToken, err = ParsePubkey(t.SenderTokenAddress)
	}
	if err != nil {
		return fmt.Errorf("sender token address: %w", err)
	}
	refs, err := parseReferences(t.References)
	if err != nil {
		return err
	}
	b.add(CreateAssociatedTokenAccountInstruction(tokenProgram, b.signer, recipientToken, recipient, mint))
	b.addMemo(t.Memo)
	b.add(TokenTransferCheckedInstruction(tokenProgram, senderToken, mint, recipientToken, b.signer, t.Amount, t.Decimals).WithReferences(refs))
	return nil
}

// verifiedTokenAddress derives the associated token address and, when the
// caller supplied one, checks it matches.
func verifiedTokenAddress(owner, mint, tokenProgram Pubkey, given string) (Pubkey, error) {
	derived, err := AssociatedTokenAddress(owner, mint, tokenProgram)
	if err != nil {
		return Pubkey{}, err
	}
	if given != "" {
		k, err := ParsePubkey(given)
		if err != nil {
			return Pubkey{}, fmt.Errorf("token address: %w", err)
		}
		if k != derived {
			return Pubkey{}, fmt.Errorf("token address %s does not match derived %s: %w", k, derived, ErrInvalidInput)
		}
	}
	return derived, nil
}

// DelegateStake delegates lamports to a validator. Without an explicit
// stake account, one is derived from the signer, created and initialized
// first.
type DelegateStake struct {
	ValidatorPubkey string
	Value           uint64
	// StakeAccount is optional; when empty a deterministic account is
	// derived, created with seed and initialized within the transaction.
	StakeAccount string
}

func (t DelegateStake) buildInstructions(b *txBuilder) error {
	validator, err := ParsePubkey(t.ValidatorPubkey)
	if err != nil {
		return fmt.Errorf("validator: %w", err)
	}
	var stakeAccount Pubkey
	if t.StakeAccount == "" {
		seed := b.nextStakeSeed()
		stakeAccount, err = CreateWithSeed(b.signer, seed, StakeProgram)
		if err != nil {
			return err
		}
		b.add(CreateAccountWithSeedInstruction(b.signer, stakeAccount, b.signer, seed, t.Value, stakeAccountSize, StakeProgram))
		b.add(InitializeStakeInstruction(stakeAccount, b.signer, b.signer))
	} else {
		stakeAccount, err = ParsePubkey(t.StakeAccount)
		if err != nil {
			return fmt.Errorf("stake account: %w", err)
		}
	}
	b.add(DelegateStakeInstruction(stakeAccount, validator, b.signer))
	return nil
}

// DeactivateStake deactivates a single stake account.
type DeactivateStake struct {
	StakeAccount string
}

func (t DeactivateStake) buildInstructions(b *txBuilder) error {
	stakeAccount, err := ParsePubkey(t.StakeAccount)
	if err != nil {
		return fmt.Errorf("stake account: %w", err)
	}
	b.add(DeactivateStakeInstruction(stakeAccount, b.signer))
	return nil
}

// DeactivateAllStake deactivates several stake accounts in one transaction.
type DeactivateAllStake struct {
	StakeAccounts []string
}

func (t DeactivateAllStake) buildInstructions(b *txBuilder) error {
	if len(t.StakeAccounts) == 0 {
		return fmt.Errorf("no stake accounts: %w", ErrInvalidInput)
	}
	for i, acct := range t.StakeAccounts {
		stakeAccount, err := ParsePubkey(acct)
		if err != nil {
			return fmt.Errorf("stake account %d: %w", i, err)
		}
		b.add(DeactivateStakeInstruction(stakeAccount, b.signer))
	}
	return nil
}

// WithdrawStake withdraws lamports from a stake account back to the signer.
type WithdrawStake struct {
	StakeAccount string
	Value        uint64
}

func (t WithdrawStake) buildInstructions(b *txBuilder) error {
	stakeAccount, err := ParsePubkey(t.StakeAccount)
	if err != nil {
		return fmt.Errorf("stake account: %w", err)
	}
	b.add(WithdrawStakeInstruction(stakeAccount, b.signer, b.signer, t.Value))
	return nil
}

// StakeAccountValue pairs a stake account with a lamport amount.
type StakeAccountValue struct {
	StakeAccount string
	Value        uint64
}

// WithdrawAllStake withdraws from several stake accounts in one
// transaction.
type WithdrawAllStake struct {
	StakeAccounts []StakeAccountValue
}

func (t WithdrawAllStake) buildInstructions(b *txBuilder) error {
	if len(t.StakeAccounts) == 0 {
		return fmt.Errorf("no stake accounts: %w", ErrInvalidInput)
	}
	for i, acct := range t.StakeAccounts {
		stakeAccount, err := ParsePubkey(acct.StakeAccount)
		if err != nil {
			return fmt.Errorf("stake account %d: %w", i, err)
		}
		b.add(WithdrawStakeInstruction(stakeAccount, b.signer, b.signer, acct.Value))
	}
	return nil
}

// Sign builds, signs and encodes the transaction described by the input.
// Each call is self-contained; no state is shared between calls.
func Sign(in *SigningInput) (*SigningOutput, error) {
	key, err := parsePrivateKey(in.PrivateKey)
	if err != nil {
		return nil, err
	}
	var signer Pubkey
	copy(signer[:], key.Public().(ed25519.PublicKey))

	blockhash, err := ParseBlockhash(in.RecentBlockhash)
	if err != nil {
		return nil, err
	}
	if in.TransactionType == nil {
		return nil, fmt.Errorf("no transaction type: %w", ErrInvalidInput)
	}

	b := &txBuilder{signer: signer}
	if in.NonceAccount != "" {
		nonce, err := ParsePubkey(in.NonceAccount)
		if err != nil {
			return nil, fmt.Errorf("nonce account: %w", err)
		}
		b.add(AdvanceNonceInstruction(nonce, signer))
	}
	if in.PriorityFeePrice != nil {
		b.add(SetComputeUnitPriceInstruction(*in.PriorityFeePrice))
	}
	if in.PriorityFeeLimit != nil {
		b.add(SetComputeUnitLimitInstruction(*in.PriorityFeeLimit))
	}
	if err := in.TransactionType.buildInstructions(b); err != nil {
		return nil, err
	}

	header, keys, err := CompileKeys(b.ixs, signer).MessageComponents()
	if err != nil {
		return nil, err
	}
	compiled, err := CompileInstructions(b.ixs, keys)
	if err != nil {
		return nil, err
	}

	legacy := LegacyMessage{
		Header:          header,
		AccountKeys:     keys,
		RecentBlockhash: blockhash,
		Instructions:    compiled,
	}
	var msg VersionedMessage
	if in.V0Message {
		msg = &MessageV0{LegacyMessage: legacy}
	} else {
		msg = &legacy
	}
	msgBytes, err := msg.MarshalBinary()
	if err != nil {
		return nil, err
	}

	tx := NewTransaction(msg)
	if err := tx.Sign(key); err != nil {
		return nil, err
	}
	txBytes, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}

	// The signed bytes must parse back to the identical payload.
	var check VersionedTransaction
	if err := check.UnmarshalBinary(txBytes); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInternalEncoding)
	}
	again, err := check.MarshalBinary()
	if err != nil || !bytes.Equal(again, txBytes) {
		return nil, ErrInternalEncoding
	}

	return &SigningOutput{
		Encoded:    base58.Bitcoin.Encode(txBytes),
		UnsignedTx: base58.Bitcoin.Encode(msgBytes),
		Signatures: tx.Signatures,
	}, nil
}

// parsePrivateKey accepts a 32-byte Ed25519 seed or the 64-byte keypair
// form, validating that the embedded public half matches the seed.
func parsePrivateKey(raw []byte) (ed25519.PrivateKey, error) {
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		key := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !bytes.Equal(key[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
			return nil, fmt.Errorf("public key half mismatch: %w", ErrInvalidPrivateKey)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("expected %d or %d bytes, got %d: %w", ed25519.SeedSize, ed25519.PrivateKeySize, len(raw), ErrInvalidPrivateKey)
	}
}
