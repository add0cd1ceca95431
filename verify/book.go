package verify

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/btree"
	"github.com/iov-one/multisend"
)

// expectation is the balance an address must hold after the replay.
type expectation struct {
	addr   common.Address
	amount *big.Int
}

func lessExpectation(a, b *expectation) bool {
	return bytes.Compare(a.addr[:], b.addr[:]) < 0
}

// book keeps expected balances ordered by address. Amounts of payouts to
// the same recipient are summed.
type book struct {
	tree *btree.BTreeG[*expectation]
}

func newBook(payouts []multisend.Payout) *book {
	b := &book{tree: btree.NewG(8, lessExpectation)}
	for _, p := range payouts {
		b.add(p.Recipient, p.Amount)
	}
	return b
}

func (b *book) add(addr common.Address, amount *big.Int) {
	if e, ok := b.tree.Get(&expectation{addr: addr}); ok {
		e.amount.Add(e.amount, amount)
		return
	}
	b.tree.ReplaceOrInsert(&expectation{addr: addr, amount: new(big.Int).Set(amount)})
}

// each calls fn for every expectation in address order until fn returns
// false.
func (b *book) each(fn func(addr common.Address, amount *big.Int) bool) {
	b.tree.Ascend(func(e *expectation) bool {
		return fn(e.addr, e.amount)
	})
}

func (b *book) Len() int {
	return b.tree.Len()
}
