package verify

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/multisendtest"
	"github.com/iov-one/multisend/multisendtest/assert"
)

func TestChainConfig(t *testing.T) {
	frontier, err := ChainConfig("frontier")
	assert.Nil(t, err)
	if frontier.IsHomestead(big.NewInt(1)) {
		t.Fatal("frontier rules must not include homestead")
	}

	london, err := ChainConfig("london")
	assert.Nil(t, err)
	for name, active := range map[string]bool{
		"homestead": london.IsHomestead(big.NewInt(1)),
		"eip150":    london.IsEIP150(big.NewInt(1)),
		"eip158":    london.IsEIP158(big.NewInt(1)),
		"byzantium": london.IsByzantium(big.NewInt(1)),
		"istanbul":  london.IsIstanbul(big.NewInt(1)),
		"berlin":    london.IsBerlin(big.NewInt(1)),
		"london":    london.IsLondon(big.NewInt(1)),
	} {
		if !active {
			t.Errorf("london rules must include %s", name)
		}
	}

	_, err = ChainConfig("shanghai")
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestEVMLedgerBalance(t *testing.T) {
	l, err := NewEVMLedger("frontier", 4712388)
	assert.Nil(t, err)

	assert.Equal(t, uint64(0), l.GasUsed())

	addr := multisendtest.SequenceAddr(1)
	assert.BigEqual(t, new(big.Int), l.Balance(addr))

	amount := big.NewInt(1234)
	l.SetBalance(addr, amount)
	amount.SetInt64(1)
	assert.BigEqual(t, big.NewInt(1234), l.Balance(addr))

	// Returned values must not alias the ledger state.
	l.Balance(addr).SetInt64(0)
	assert.BigEqual(t, big.NewInt(1234), l.Balance(addr))
}

func TestBook(t *testing.T) {
	a := multisendtest.SequenceAddr(1)
	b := multisendtest.SequenceAddr(2)

	bk := newBook(nil)
	bk.add(a, big.NewInt(1))
	bk.add(b, big.NewInt(2))
	bk.add(a, big.NewInt(3))
	assert.Equal(t, 2, bk.Len())

	got := make(map[string]int64)
	var prev []byte
	bk.each(func(addr common.Address, amount *big.Int) bool {
		if prev != nil && string(prev) >= string(addr[:]) {
			t.Fatal("addresses not in ascending order")
		}
		prev = append([]byte(nil), addr[:]...)
		got[string(addr[:])] = amount.Int64()
		return true
	})
	assert.Equal(t, int64(4), got[string(a[:])])
	assert.Equal(t, int64(2), got[string(b[:])])
}
