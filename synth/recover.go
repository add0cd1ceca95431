package synth

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/multisend/errors"
	"golang.org/x/crypto/sha3"
)

// Recoverer returns the address algebraically implied by a signature over
// the given hash. The private key of the returned address does not have to
// be known to anyone.
type Recoverer interface {
	Recover(hash common.Hash, v byte, r, s *big.Int) (common.Address, error)
}

// EthRecoverer recovers addresses using the go-ethereum cryptography layer,
// exactly as the ledger does when it validates a transaction.
type EthRecoverer struct{}

var _ Recoverer = EthRecoverer{}

// Recover implements Recoverer interface.
func (EthRecoverer) Recover(hash common.Hash, v byte, r, s *big.Int) (common.Address, error) {
	recid, err := recoveryID(v)
	if err != nil {
		return common.Address{}, err
	}
	if !crypto.ValidateSignatureValues(recid, r, s, true) {
		return common.Address{}, errors.Wrap(errors.ErrInvalidInput, "invalid signature values")
	}
	sig := make([]byte, crypto.SignatureLength)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	sig[crypto.RecoveryIDOffset] = recid

	pub, err := crypto.Ecrecover(hash[:], sig)
	if err != nil {
		return common.Address{}, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, errors.Wrap(errors.ErrInvalidInput, "invalid public key")
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

// KoblitzRecoverer recovers addresses using the btcec implementation of the
// secp256k1 curve. It applies the same rules as EthRecoverer and must
// always return the same result.
type KoblitzRecoverer struct{}

var _ Recoverer = KoblitzRecoverer{}

// Recover implements Recoverer interface.
func (KoblitzRecoverer) Recover(hash common.Hash, v byte, r, s *big.Int) (common.Address, error) {
	recid, err := recoveryID(v)
	if err != nil {
		return common.Address{}, err
	}
	n := btcec.S256().Params().N
	if r == nil || s == nil || r.Sign() <= 0 || s.Sign() <= 0 || r.Cmp(n) >= 0 {
		return common.Address{}, errors.Wrap(errors.ErrInvalidInput, "invalid signature values")
	}
	if s.Cmp(new(big.Int).Rsh(n, 1)) > 0 {
		return common.Address{}, errors.Wrap(errors.ErrInvalidInput, "signature s value too high")
	}

	// Compact format is the header byte followed by r and s.
	sig := make([]byte, 65)
	sig[0] = 27 + recid
	r.FillBytes(sig[1:33])
	s.FillBytes(sig[33:65])

	pub, _, err := btcecdsa.RecoverCompact(sig, hash[:])
	if err != nil {
		return common.Address{}, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(pub.SerializeUncompressed()[1:])
	return common.BytesToAddress(h.Sum(nil)[12:]), nil
}

func recoveryID(v byte) (byte, error) {
	if v != 27 && v != 28 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "invalid v value %d", v)
	}
	return v - 27, nil
}
