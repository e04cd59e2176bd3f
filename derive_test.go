package soltx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ModChain/soltx"
)

func TestCreateWithSeed(t *testing.T) {
	signer := b58key("zVSpQnbBZ7dyUWzXhrUQRsTYYNzoAdJWHsHSqhPj3Xu")
	got, err := soltx.CreateWithSeed(signer, "stake:0", soltx.StakeProgram)
	if err != nil {
		t.Fatalf("CreateWithSeed failed: %s", err)
	}
	if got.String() != "CNgLiPbWj1uaTnSbGJXsWNSLbUeKDJkfrYNPTDXQRzSm" {
		t.Errorf("unexpected derived address: %s", got)
	}

	if _, err := soltx.CreateWithSeed(signer, strings.Repeat("x", 33), soltx.StakeProgram); !errors.Is(err, soltx.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for oversized seed, got %v", err)
	}
}

func TestAssociatedTokenAddress(t *testing.T) {
	mint := b58key("SRMuApVNdxXokk5GT7XD5cUUgXMBCoAz2LHeuAoKWRt")
	cases := []struct {
		owner string
		want  string
	}{
		{"B1iGmDJdvmxyUiYM8UEo2Uw2D58EmUrw4KyLYMmrhf8V", "EDNd1ycsydWYwVmrYZvqYazFqwk1QjBgAUKFjBoz1jKP"},
		{"Eg5jqooyG6ySaXKbQUu4Lpvu2SqUPZrNkM4zXs9iUDLJ", "ANVCrmRw7Ww7rTFfMbrjApSPXEEcZpBa6YEiBdf98pAf"},
		{"3xJ3MoUVFPNFEHfWdtNFa8ajXUHsJPzXcBSWMKLd76ft", "67BrwFYt7qUnbAcYBVx7sQ4jeD2KWN1ohP6bMikmmQV3"},
	}
	for _, c := range cases {
		got, err := soltx.AssociatedTokenAddress(b58key(c.owner), mint, soltx.TokenProgram)
		if err != nil {
			t.Fatalf("AssociatedTokenAddress(%s) failed: %s", c.owner, err)
		}
		if got.String() != c.want {
			t.Errorf("ATA for %s: got %s, want %s", c.owner, got, c.want)
		}
	}
}

func TestIsOnCurve(t *testing.T) {
	// Real wallet keys decompress to curve points.
	if !soltx.IsOnCurve(b58key("B1iGmDJdvmxyUiYM8UEo2Uw2D58EmUrw4KyLYMmrhf8V")) {
		t.Error("wallet key should be on curve")
	}
	// Program derived addresses are off-curve by construction.
	ata := b58key("EDNd1ycsydWYwVmrYZvqYazFqwk1QjBgAUKFjBoz1jKP")
	if soltx.IsOnCurve(ata) {
		t.Error("associated token address should be off curve")
	}
}

func TestFindProgramAddressRejectsLongSeed(t *testing.T) {
	long := make([]byte, 33)
	if _, _, err := soltx.FindProgramAddress([][]byte{long}, soltx.AssociatedTokenProgram); !errors.Is(err, soltx.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
