package multisend

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/multisend/errors"
)

// Params declares all constants used when building and verifying a cascade.
// Use DefaultParams to get the values the distribution contract gas costs
// were calibrated for.
type Params struct {
	// GasBase is the gas allowance of a distribution transaction
	// regardless of how many recipients it pays.
	GasBase uint64
	// GasPerRecipient is the gas allowance added for every recipient. It
	// bounds the worst case cost of a single send, including creating
	// the recipient account.
	GasPerRecipient uint64
	// GasPrice is the price in wei of a single gas unit used by every
	// transaction of the cascade.
	GasPrice *big.Int
	// BlockGasLimit is the ledger-wide block gas ceiling. No transaction
	// may declare a higher gas limit.
	BlockGasLimit uint64

	// SignatureRSeed is the first r value tried by the signature search.
	SignatureRSeed *big.Int
	// SignatureS is the fixed s value of every synthesized signature.
	SignatureS *big.Int
	// SignatureV is the fixed recovery value of every synthesized
	// signature, 27 or 28.
	SignatureV uint8
	// MaxAttempts caps the number of r values tried for a single
	// transaction.
	MaxAttempts int

	// MaxBatchSize is the default maximum number of payouts delivered by a
	// single transaction.
	MaxBatchSize int
	// Rules is the name of the ledger rule set the cascade is simulated
	// with.
	Rules string
}

// signatureSeed is the value used for both r (as the starting point) and s.
var signatureSeed, _ = new(big.Int).SetString("0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0DA0", 16)

// DefaultParams returns a fresh copy of the default parameters.
func DefaultParams() Params {
	return Params{
		GasBase:         50000,
		GasPerRecipient: 35000,
		GasPrice:        big.NewInt(20000000000),
		BlockGasLimit:   4712388,
		SignatureRSeed:  new(big.Int).Set(signatureSeed),
		SignatureS:      new(big.Int).Set(signatureSeed),
		SignatureV:      27,
		MaxAttempts:     1024,
		MaxBatchSize:    110,
		Rules:           "frontier",
	}
}

// GasLimit returns the gas limit of a distribution transaction paying the
// given number of recipients.
func (p Params) GasLimit(recipients int) (uint64, error) {
	if recipients < 0 {
		return 0, errors.Wrap(errors.ErrInvalidInput, "negative recipient count")
	}
	n := uint64(recipients)
	if n != 0 && p.GasPerRecipient > (^uint64(0)-p.GasBase)/n {
		return 0, errors.Wrapf(errors.ErrOverflow, "gas limit for %d recipients", recipients)
	}
	return p.GasBase + n*p.GasPerRecipient, nil
}

// MaxRecipients returns the highest number of recipients a single
// transaction can pay without exceeding the block gas limit.
func (p Params) MaxRecipients() int {
	if p.GasPerRecipient == 0 || p.BlockGasLimit < p.GasBase {
		return 0
	}
	return int((p.BlockGasLimit - p.GasBase) / p.GasPerRecipient)
}

// Validate returns an error if any of the parameters cannot be used.
func (p Params) Validate() error {
	var errs error

	if p.GasPerRecipient == 0 {
		errs = errors.Append(errs,
			errors.Field("GasPerRecipient", errors.ErrEmpty, "gas per recipient is required"))
	}
	if p.GasPrice == nil || p.GasPrice.Sign() < 0 {
		errs = errors.Append(errs,
			errors.Field("GasPrice", errors.ErrInvalidAmount, "gas price must not be negative"))
	}
	if p.BlockGasLimit == 0 {
		errs = errors.Append(errs,
			errors.Field("BlockGasLimit", errors.ErrEmpty, "block gas limit is required"))
	}

	curveN := crypto.S256().Params().N
	if p.SignatureRSeed == nil || p.SignatureRSeed.Sign() <= 0 || p.SignatureRSeed.Cmp(curveN) >= 0 {
		errs = errors.Append(errs,
			errors.Field("SignatureRSeed", errors.ErrInvalidInput, "must be in range [1, N)"))
	}
	// Ledgers after the homestead release reject signatures with s above
	// half of the curve order.
	halfN := new(big.Int).Rsh(curveN, 1)
	if p.SignatureS == nil || p.SignatureS.Sign() <= 0 || p.SignatureS.Cmp(halfN) > 0 {
		errs = errors.Append(errs,
			errors.Field("SignatureS", errors.ErrInvalidInput, "must be in range [1, N/2]"))
	}
	if p.SignatureV != 27 && p.SignatureV != 28 {
		errs = errors.Append(errs,
			errors.Field("SignatureV", errors.ErrInvalidInput, "must be 27 or 28"))
	}
	if p.MaxAttempts <= 0 {
		errs = errors.Append(errs,
			errors.Field("MaxAttempts", errors.ErrInvalidInput, "must be greater than zero"))
	}

	if p.MaxBatchSize <= 0 {
		errs = errors.Append(errs,
			errors.Field("MaxBatchSize", errors.ErrInvalidInput, "must be greater than zero"))
	} else if gas, err := p.GasLimit(p.MaxBatchSize); err != nil {
		errs = errors.AppendField(errs, "MaxBatchSize", err)
	} else if p.BlockGasLimit != 0 && gas > p.BlockGasLimit {
		errs = errors.Append(errs,
			errors.Field("MaxBatchSize", errors.ErrBatchTooLarge,
				"gas limit %d exceeds block gas limit %d, at most %d recipients fit",
				gas, p.BlockGasLimit, p.MaxRecipients()))
	}

	if p.Rules == "" {
		errs = errors.Append(errs,
			errors.Field("Rules", errors.ErrEmpty, "rule set name is required"))
	}
	return errs
}

// paramsJSON is the serialized form of Params. Numbers can be provided as
// decimal or 0x prefixed hexadecimal values.
type paramsJSON struct {
	GasBase         *math.HexOrDecimal64  `json:"gas_base,omitempty"`
	GasPerRecipient *math.HexOrDecimal64  `json:"gas_per_recipient,omitempty"`
	GasPrice        *math.HexOrDecimal256 `json:"gas_price,omitempty"`
	BlockGasLimit   *math.HexOrDecimal64  `json:"block_gas_limit,omitempty"`
	SignatureRSeed  *math.HexOrDecimal256 `json:"signature_r_seed,omitempty"`
	SignatureS      *math.HexOrDecimal256 `json:"signature_s,omitempty"`
	SignatureV      *uint8                `json:"signature_v,omitempty"`
	MaxAttempts     *int                  `json:"max_attempts,omitempty"`
	MaxBatchSize    *int                  `json:"max_batch_size,omitempty"`
	Rules           *string               `json:"rules,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Params) MarshalJSON() ([]byte, error) {
	gasBase := math.HexOrDecimal64(p.GasBase)
	gasPerRecipient := math.HexOrDecimal64(p.GasPerRecipient)
	blockGasLimit := math.HexOrDecimal64(p.BlockGasLimit)
	return json.Marshal(paramsJSON{
		GasBase:         &gasBase,
		GasPerRecipient: &gasPerRecipient,
		GasPrice:        (*math.HexOrDecimal256)(p.GasPrice),
		BlockGasLimit:   &blockGasLimit,
		SignatureRSeed:  (*math.HexOrDecimal256)(p.SignatureRSeed),
		SignatureS:      (*math.HexOrDecimal256)(p.SignatureS),
		SignatureV:      &p.SignatureV,
		MaxAttempts:     &p.MaxAttempts,
		MaxBatchSize:    &p.MaxBatchSize,
		Rules:           &p.Rules,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Only the attributes present in
// the serialized form are overwritten.
func (p *Params) UnmarshalJSON(raw []byte) error {
	var pj paramsJSON
	if err := json.Unmarshal(raw, &pj); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if pj.GasBase != nil {
		p.GasBase = uint64(*pj.GasBase)
	}
	if pj.GasPerRecipient != nil {
		p.GasPerRecipient = uint64(*pj.GasPerRecipient)
	}
	if pj.GasPrice != nil {
		p.GasPrice = new(big.Int).Set((*big.Int)(pj.GasPrice))
	}
	if pj.BlockGasLimit != nil {
		p.BlockGasLimit = uint64(*pj.BlockGasLimit)
	}
	if pj.SignatureRSeed != nil {
		p.SignatureRSeed = new(big.Int).Set((*big.Int)(pj.SignatureRSeed))
	}
	if pj.SignatureS != nil {
		p.SignatureS = new(big.Int).Set((*big.Int)(pj.SignatureS))
	}
	if pj.SignatureV != nil {
		p.SignatureV = *pj.SignatureV
	}
	if pj.MaxAttempts != nil {
		p.MaxAttempts = *pj.MaxAttempts
	}
	if pj.MaxBatchSize != nil {
		p.MaxBatchSize = *pj.MaxBatchSize
	}
	if pj.Rules != nil {
		p.Rules = *pj.Rules
	}
	return nil
}

// LoadParams reads a JSON serialized configuration on top of the default
// parameters. Loaded parameters are validated.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		if errors.ErrInvalidInput.Is(err) {
			return p, err
		}
		return p, errors.Wrapf(errors.ErrInvalidInput, "decode params: %s", err)
	}
	if err := p.Validate(); err != nil {
		return p, errors.Wrap(err, "invalid params")
	}
	return p, nil
}
