package synth

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/errors"
)

// Synthesizer produces valid signatures for which nobody knows the private
// key. The v and s values are fixed. The r value is searched for, starting
// at the seed and incrementing by one, until the recovery succeeds.
type Synthesizer struct {
	recoverer   Recoverer
	seed        *big.Int
	s           *big.Int
	v           byte
	maxAttempts int
}

// New returns a synthesizer configured with the signature values of given
// parameters. If recoverer is nil, EthRecoverer is used.
func New(p multisend.Params, recoverer Recoverer) *Synthesizer {
	if recoverer == nil {
		recoverer = EthRecoverer{}
	}
	return &Synthesizer{
		recoverer:   recoverer,
		seed:        new(big.Int).Set(p.SignatureRSeed),
		s:           new(big.Int).Set(p.SignatureS),
		v:           p.SignatureV,
		maxAttempts: p.MaxAttempts,
	}
}

// Synthesize returns the address recovered from the first acceptable r
// value together with that r value. The result depends only on the hash and
// the synthesizer configuration.
func (sy *Synthesizer) Synthesize(hash common.Hash) (common.Address, *big.Int, error) {
	r := new(big.Int).Set(sy.seed)
	one := big.NewInt(1)
	for i := 0; i < sy.maxAttempts; i++ {
		addr, err := sy.recoverer.Recover(hash, sy.v, new(big.Int).Set(r), sy.s)
		if err == nil {
			return addr, r, nil
		}
		r.Add(r, one)
	}
	return common.Address{}, nil, errors.Wrapf(errors.ErrSynthesisExhausted,
		"no recoverable signature for %s within %d attempts", hash.Hex(), sy.maxAttempts)
}

// Seal fills the signature fields of given transaction with a synthesized
// signature and returns the resulting immutable transaction together with
// its sender.
func (sy *Synthesizer) Seal(inner *types.LegacyTx) (*types.Transaction, common.Address, error) {
	inner.V, inner.R, inner.S = nil, nil, nil
	hash := signer.Hash(types.NewTx(inner))

	sender, r, err := sy.Synthesize(hash)
	if err != nil {
		return nil, common.Address{}, err
	}
	inner.V = new(big.Int).SetUint64(uint64(sy.v))
	inner.R = r
	inner.S = new(big.Int).Set(sy.s)
	return types.NewTx(inner), sender, nil
}

// signer hashes and validates transactions the way the ledger does for
// transactions without replay protection.
var signer = types.HomesteadSigner{}

// Sender returns the sender of a sealed transaction as the ledger sees it.
func Sender(tx *types.Transaction) (common.Address, error) {
	addr, err := types.Sender(signer, tx)
	if err != nil {
		return common.Address{}, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return addr, nil
}
