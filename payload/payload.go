package payload

import (
	"bytes"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/errors"
)

// Encoder builds the data of distribution contract creation transactions.
type Encoder struct {
	code []byte
	abi  abi.ABI
}

// DefaultEncoder uses the distribution contract creation code.
var DefaultEncoder = mustNewEncoder(CreationCode)

// NewEncoder returns an encoder that prefixes the constructor arguments with
// given creation code. The code must implement the distribution contract
// constructor.
func NewEncoder(code []byte) (*Encoder, error) {
	if len(code) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "creation code")
	}
	a, err := abi.JSON(strings.NewReader(ABI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	c := make([]byte, len(code))
	copy(c, code)
	return &Encoder{code: c, abi: a}, nil
}

func mustNewEncoder(code []byte) *Encoder {
	e, err := NewEncoder(code)
	if err != nil {
		panic(err)
	}
	return e
}

// Code returns a copy of the creation code used by this encoder.
func (e *Encoder) Code() []byte {
	c := make([]byte, len(e.code))
	copy(c, e.code)
	return c
}

// Encode returns the creation code followed by the encoded constructor
// arguments. The remainder is always the last argument.
func (e *Encoder) Encode(recipients []common.Address, amounts []*big.Int, remainder common.Address) ([]byte, error) {
	if len(recipients) != len(amounts) {
		return nil, errors.Wrapf(errors.ErrInvalidBatch,
			"%d recipients and %d amounts", len(recipients), len(amounts))
	}
	for i, a := range amounts {
		if a == nil || a.Sign() < 0 {
			return nil, errors.Wrapf(errors.ErrInvalidBatch, "invalid amount at index %d", i)
		}
	}
	args, err := e.abi.Pack("", recipients, amounts, remainder)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidBatch, err.Error())
	}
	data := make([]byte, 0, len(e.code)+len(args))
	data = append(data, e.code...)
	return append(data, args...), nil
}

// EncodePayouts is Encode for a payout batch.
func (e *Encoder) EncodePayouts(batch []multisend.Payout, remainder common.Address) ([]byte, error) {
	recipients := make([]common.Address, len(batch))
	amounts := make([]*big.Int, len(batch))
	for i, p := range batch {
		recipients[i] = p.Recipient
		amounts[i] = p.Amount
	}
	return e.Encode(recipients, amounts, remainder)
}

// Arguments are the decoded constructor arguments of a distribution
// transaction.
type Arguments struct {
	Recipients []common.Address
	Amounts    []*big.Int
	Remainder  common.Address
}

// Payouts returns the arguments as a payout batch.
func (a Arguments) Payouts() []multisend.Payout {
	ps := make([]multisend.Payout, len(a.Recipients))
	for i := range a.Recipients {
		ps[i] = multisend.NewPayout(a.Recipients[i], a.Amounts[i])
	}
	return ps
}

// Decode returns the constructor arguments of data created by Encode.
func (e *Encoder) Decode(data []byte) (*Arguments, error) {
	if !bytes.HasPrefix(data, e.code) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "creation code does not match")
	}
	values, err := e.abi.Constructor.Inputs.Unpack(data[len(e.code):])
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if len(values) != 3 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "want 3 arguments, got %d", len(values))
	}
	recipients, ok1 := values[0].([]common.Address)
	amounts, ok2 := values[1].([]*big.Int)
	remainder, ok3 := values[2].(common.Address)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "unexpected argument types")
	}
	if len(recipients) != len(amounts) {
		return nil, errors.Wrapf(errors.ErrInvalidBatch,
			"%d recipients and %d amounts", len(recipients), len(amounts))
	}
	return &Arguments{Recipients: recipients, Amounts: amounts, Remainder: remainder}, nil
}

// SendFailure is a send the distribution contract reported as failed.
type SendFailure struct {
	Recipient common.Address
	Amount    *big.Int
}

// SendFailures decodes all SendFailure events found in given logs. Logs of
// other events are ignored.
func (e *Encoder) SendFailures(logs []*types.Log) ([]SendFailure, error) {
	event := e.abi.Events["SendFailure"]
	var failures []SendFailure
	for _, l := range logs {
		if len(l.Topics) == 0 || l.Topics[0] != event.ID {
			continue
		}
		if len(l.Topics) != 2 {
			return failures, errors.Wrapf(errors.ErrInvalidInput, "want 2 topics, got %d", len(l.Topics))
		}
		values, err := e.abi.Unpack("SendFailure", l.Data)
		if err != nil {
			return failures, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		amount, ok := values[0].(*big.Int)
		if !ok {
			return failures, errors.Wrap(errors.ErrInvalidInput, "unexpected amount type")
		}
		failures = append(failures, SendFailure{
			Recipient: common.BytesToAddress(l.Topics[1].Bytes()),
			Amount:    amount,
		})
	}
	return failures, nil
}
