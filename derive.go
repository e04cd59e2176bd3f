package soltx

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/KarpelesLab/cryptutil"
)

// pdaMarker is the domain separator appended when hashing program derived
// addresses.
const pdaMarker = "ProgramDerivedAddress"

// maxSeedLen is the longest seed accepted by on-chain address derivation.
const maxSeedLen = 32

// CreateWithSeed derives the address SHA-256(base ∥ seed ∥ owner), the
// scheme used by the System Program's CreateAccountWithSeed.
func CreateWithSeed(base Pubkey, seed string, owner Pubkey) (Pubkey, error) {
	if len(seed) > maxSeedLen {
		return Pubkey{}, fmt.Errorf("seed exceeds %d bytes: %w", maxSeedLen, ErrInvalidInput)
	}
	buf := make([]byte, 0, 64+len(seed))
	buf = append(buf, base[:]...)
	buf = append(buf, seed...)
	buf = append(buf, owner[:]...)
	var k Pubkey
	copy(k[:], cryptutil.Hash(buf, sha256.New))
	return k, nil
}

// IsOnCurve reports whether the key decompresses to a valid Ed25519 curve
// point. Program derived addresses must not be on the curve, so that no
// private key can ever sign for them.
func IsOnCurve(k Pubkey) bool {
	_, err := new(edwards25519.Point).SetBytes(k[:])
	return err == nil
}

// FindProgramAddress finds the program derived address for the given seeds,
// trying bump bytes from 255 downward until the hash lands off the Ed25519
// curve. Returns the address and the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	for i, seed := range seeds {
		if len(seed) > maxSeedLen {
			return Pubkey{}, 0, fmt.Errorf("seed %d exceeds %d bytes: %w", i, maxSeedLen, ErrInvalidInput)
		}
	}
	for bump := 255; bump >= 0; bump-- {
		buf := make([]byte, 0, 128)
		for _, seed := range seeds {
			buf = append(buf, seed...)
		}
		buf = append(buf, byte(bump))
		buf = append(buf, programID[:]...)
		buf = append(buf, pdaMarker...)
		var k Pubkey
		copy(k[:], cryptutil.Hash(buf, sha256.New))
		if !IsOnCurve(k) {
			return k, uint8(bump), nil
		}
	}
	return Pubkey{}, 0, errors.New("no viable program derived address")
}

// AssociatedTokenAddress derives the associated token account address for
// (owner, mint) under the given token program.
func AssociatedTokenAddress(owner, mint, tokenProgram Pubkey) (Pubkey, error) {
	k, _, err := FindProgramAddress([][]byte{owner[:], tokenProgram[:], mint[:]}, AssociatedTokenProgram)
	return k, err
}
