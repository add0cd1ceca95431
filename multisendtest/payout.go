package multisendtest

import (
	"math/big"

	"github.com/iov-one/multisend"
)

// Payouts returns a payout for each given amount. Recipients are sequence
// addresses starting at 0.
func Payouts(amounts ...int64) []multisend.Payout {
	ps := make([]multisend.Payout, len(amounts))
	for i, a := range amounts {
		ps[i] = multisend.NewPayout(SequenceAddr(i), big.NewInt(a))
	}
	return ps
}

// SequencePayouts returns n payouts. The i-th payout transfers
// (i+1)*unit wei.
func SequencePayouts(n int, unit int64) []multisend.Payout {
	amounts := make([]int64, n)
	for i := range amounts {
		amounts[i] = int64(i+1) * unit
	}
	return Payouts(amounts...)
}

// Params returns the default parameters with the gas price set to zero.
// This allows to test distribution arithmetic using small amounts.
func Params() multisend.Params {
	p := multisend.DefaultParams()
	p.GasPrice = new(big.Int)
	return p
}
