package verify

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/payload"
	"github.com/iov-one/multisend/synth"
)

// Receipt is the outcome of a single replayed transaction.
type Receipt struct {
	Hash    common.Hash
	Sender  common.Address
	GasUsed uint64
	// Success is false if the transaction was included but its
	// execution failed.
	Success bool
}

// Report describes a replayed cascade. None of its values are required for
// correctness. Only the payout check is.
type Report struct {
	Root    common.Address
	Funding *big.Int
	// GasUsed is the total gas used by all transactions.
	GasUsed uint64
	// Fees is the total amount paid for the used gas.
	Fees     *big.Int
	Receipts []Receipt
	// Remainder is the remainder address of the root transaction and
	// RemainderBalance its balance after the replay. Both are zero if the
	// root transaction data cannot be decoded.
	Remainder        common.Address
	RemainderBalance *big.Int
	// Stranded is the value left on the synthesized sender addresses.
	// This is the refund of unused gas and cannot be moved by anyone.
	Stranded     *big.Int
	SendFailures []payload.SendFailure
}

// Verifier replays cascades on a simulated ledger.
type Verifier struct {
	encoder *payload.Encoder
	// NewLedger returns the empty ledger used by a single replay.
	NewLedger func() (Ledger, error)
}

// NewVerifier returns a verifier replaying on an EVMLedger configured with
// given parameters. If enc is nil the default encoder is used.
func NewVerifier(p multisend.Params, enc *payload.Encoder) *Verifier {
	if enc == nil {
		enc = payload.DefaultEncoder
	}
	rules, gasLimit := p.Rules, p.BlockGasLimit
	return &Verifier{
		encoder: enc,
		NewLedger: func() (Ledger, error) {
			return NewEVMLedger(rules, gasLimit)
		},
	}
}

// Verify replays given transactions, in order, on a fresh ledger where only
// the sender of the first transaction holds its exact funding requirement.
// Afterwards every payout recipient must hold exactly the sum of its payout
// amounts.
//
// Every recipient balance that does not match is reported as a field error,
// named after the recipient address, of ErrPayoutMismatch kind. A
// transaction that cannot be applied at all fails with ErrReplayFailed.
// The report is returned together with a mismatch error, so that it can be
// inspected.
func (v *Verifier) Verify(ctx context.Context, txs []*types.Transaction, payouts []multisend.Payout) (*Report, error) {
	if len(txs) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no transactions")
	}
	if err := multisend.ValidatePayouts(payouts); err != nil {
		return nil, err
	}
	ledger, err := v.NewLedger()
	if err != nil {
		return nil, errors.Wrap(err, "ledger")
	}
	logger := multisend.GetLogger(ctx)

	root, err := synth.Sender(txs[0])
	if err != nil {
		return nil, errors.Wrap(err, "root sender")
	}
	funding := multisend.Funding(txs[0], root)
	ledger.SetBalance(root, funding.Amount)

	report := &Report{
		Root:             root,
		Funding:          new(big.Int).Set(funding.Amount),
		Fees:             new(big.Int),
		RemainderBalance: new(big.Int),
		Stranded:         new(big.Int),
	}
	if args, err := v.encoder.Decode(txs[0].Data()); err == nil {
		report.Remainder = args.Remainder
	}

	senders := make([]common.Address, 0, len(txs))
	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sender, err := synth.Sender(tx)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %d", i)
		}
		receipt, err := ledger.Apply(tx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrReplayFailed, "transaction %d from %s: %s", i, sender.Hex(), err)
		}
		senders = append(senders, sender)

		success := receipt.Status == types.ReceiptStatusSuccessful
		report.Receipts = append(report.Receipts, Receipt{
			Hash:    tx.Hash(),
			Sender:  sender,
			GasUsed: receipt.GasUsed,
			Success: success,
		})
		fee := new(big.Int).SetUint64(receipt.GasUsed)
		report.Fees.Add(report.Fees, fee.Mul(fee, tx.GasPrice()))

		failures, err := v.encoder.SendFailures(receipt.Logs)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %d logs", i)
		}
		report.SendFailures = append(report.SendFailures, failures...)

		if success {
			logger.Debug("transaction replayed", "index", i, "sender", sender.Hex(), "gas", receipt.GasUsed)
		} else {
			logger.Error("transaction failed", "index", i, "sender", sender.Hex(), "gas", receipt.GasUsed)
		}
	}

	report.GasUsed = ledger.GasUsed()
	for _, s := range senders {
		report.Stranded.Add(report.Stranded, ledger.Balance(s))
	}
	if report.Remainder != (common.Address{}) {
		report.RemainderBalance = ledger.Balance(report.Remainder)
	}

	var errs error
	expected := newBook(payouts)
	expected.each(func(addr common.Address, want *big.Int) bool {
		if got := ledger.Balance(addr); got.Cmp(want) != 0 {
			errs = errors.Append(errs, errors.Field(addr.Hex(), errors.ErrPayoutMismatch,
				"want %s, got %s", want, got))
		}
		return true
	})
	logger.Info("cascade replayed",
		"transactions", len(txs),
		"recipients", expected.Len(),
		"gas", report.GasUsed,
		"stranded", report.Stranded.String())
	return report, errs
}
