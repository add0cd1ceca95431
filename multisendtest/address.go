package multisendtest

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DecodeAddr takes a hex encoded address string and returns its binary
// representation. The 0x prefix is optional.
func DecodeAddr(t testing.TB, encoded string) common.Address {
	t.Helper()
	if !common.IsHexAddress(encoded) {
		t.Fatalf("%q is not a valid hex address", encoded)
	}
	return common.HexToAddress(encoded)
}

// SequenceAddr returns a deterministic address for the given sequence
// number. Returned addresses never collide with the precompiled contract
// addresses.
func SequenceAddr(n int) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte(fmt.Sprintf("recipient/%d", n))))
}
