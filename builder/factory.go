package builder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/payload"
	"github.com/iov-one/multisend/synth"
)

// Transaction is a sealed distribution transaction together with the
// information derived while building it.
type Transaction struct {
	Tx *types.Transaction
	// Sender is the synthesized sender address. Nobody owns its private
	// key.
	Sender common.Address
	// Funding is the exact balance Sender must hold before Tx is
	// executed.
	Funding multisend.FundingRequirement
	// Payouts is the batch delivered by this transaction.
	Payouts []multisend.Payout
	// Level is the distance from the leaves. Transactions paying the
	// requested payouts are at level 0.
	Level int
}

// Factory creates a single distribution transaction for a payout batch.
type Factory struct {
	params  multisend.Params
	encoder *payload.Encoder
	synth   *synth.Synthesizer
}

// NewFactory returns a factory using given parameters. Nil encoder and
// synthesizer are replaced with the defaults for those parameters.
func NewFactory(p multisend.Params, enc *payload.Encoder, sy *synth.Synthesizer) *Factory {
	if enc == nil {
		enc = payload.DefaultEncoder
	}
	if sy == nil {
		sy = synth.New(p, nil)
	}
	return &Factory{params: p, encoder: enc, synth: sy}
}

// Params returns the parameters this factory was created with.
func (f *Factory) Params() multisend.Params {
	return f.params
}

// Build returns a sealed contract creation transaction that delivers given
// batch and sends the rest of its balance to the remainder address.
func (f *Factory) Build(batch []multisend.Payout, remainder common.Address) (*Transaction, error) {
	if err := multisend.ValidatePayouts(batch); err != nil {
		return nil, err
	}
	gas, err := f.params.GasLimit(len(batch))
	if err != nil {
		return nil, errors.Wrap(err, "gas limit")
	}
	if gas > f.params.BlockGasLimit {
		return nil, errors.Wrapf(errors.ErrBatchTooLarge,
			"%d recipients require %d gas, block gas limit is %d", len(batch), gas, f.params.BlockGasLimit)
	}
	data, err := f.encoder.EncodePayouts(batch, remainder)
	if err != nil {
		return nil, errors.Wrap(err, "payload")
	}

	tx, sender, err := f.synth.Seal(&types.LegacyTx{
		Nonce:    0,
		GasPrice: new(big.Int).Set(f.params.GasPrice),
		Gas:      gas,
		To:       nil,
		Value:    multisend.TotalAmount(batch),
		Data:     data,
	})
	if err != nil {
		return nil, errors.Wrap(err, "seal")
	}

	payouts := make([]multisend.Payout, len(batch))
	copy(payouts, batch)
	return &Transaction{
		Tx:      tx,
		Sender:  sender,
		Funding: multisend.Funding(tx, sender),
		Payouts: payouts,
	}, nil
}
