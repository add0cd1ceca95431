package multisend

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend/errors"
)

// Payout is a single transfer of Amount wei to Recipient. A payout must not be
// modified once created.
type Payout struct {
	Recipient common.Address
	Amount    *big.Int
}

// NewPayout returns a payout that owns a copy of the given amount.
func NewPayout(recipient common.Address, amount *big.Int) Payout {
	var a *big.Int
	if amount != nil {
		a = new(big.Int).Set(amount)
	}
	return Payout{Recipient: recipient, Amount: a}
}

// Validate returns an error if this payout cannot be part of a batch.
// A zero amount is a valid, if pointless, payout.
func (p Payout) Validate() error {
	switch {
	case p.Amount == nil:
		return errors.Wrap(errors.ErrInvalidBatch, "missing amount")
	case p.Amount.Sign() < 0:
		return errors.Wrapf(errors.ErrInvalidBatch, "negative amount %s", p.Amount)
	}
	return nil
}

func (p Payout) String() string {
	return fmt.Sprintf("%s:%s", p.Recipient.Hex(), p.Amount)
}

// ValidatePayouts validates all given payouts and returns the errors of all
// invalid entries, each as a field error named after the payout index.
func ValidatePayouts(payouts []Payout) error {
	var errs error
	for i, p := range payouts {
		errs = errors.AppendField(errs, fmt.Sprintf("Payouts.%d", i), p.Validate())
	}
	return errs
}

// TotalAmount returns the sum of all payout amounts.
func TotalAmount(payouts []Payout) *big.Int {
	total := new(big.Int)
	for _, p := range payouts {
		total.Add(total, p.Amount)
	}
	return total
}

// FundingRequirement is the exact balance an address must hold right before
// its transaction is executed.
type FundingRequirement struct {
	Address common.Address
	Amount  *big.Int
}

// Funding returns the funding requirement of a transaction sent by the given
// sender: the transferred value plus the price of the whole gas limit.
func Funding(tx *types.Transaction, sender common.Address) FundingRequirement {
	amount := new(big.Int).SetUint64(tx.Gas())
	amount.Mul(amount, tx.GasPrice())
	amount.Add(amount, tx.Value())
	return FundingRequirement{Address: sender, Amount: amount}
}

// Payout returns the funding requirement in the form of a payout, so that it
// can be delivered by another transaction.
func (f FundingRequirement) Payout() Payout {
	return NewPayout(f.Address, f.Amount)
}
