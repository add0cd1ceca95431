package verify

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/params"
	"github.com/iov-one/multisend/errors"
)

// Ledger is a simulated ledger state that transactions can be applied to.
type Ledger interface {
	// SetBalance overwrites the balance of given address.
	SetBalance(addr common.Address, amount *big.Int)
	// Balance returns the current balance of given address.
	Balance(addr common.Address) *big.Int
	// Apply executes given transaction. An error is returned if the
	// ledger refuses to include the transaction. An included but failed
	// transaction is reported by the receipt status.
	Apply(tx *types.Transaction) (*types.Receipt, error)
	// GasUsed returns the total gas used by all applied transactions.
	GasUsed() uint64
}

// Rules lists the supported ledger rule sets, oldest first. Each rule set
// includes all changes of the previous ones.
var Rules = []string{
	"frontier",
	"homestead",
	"tangerine",
	"spurious",
	"byzantium",
	"petersburg",
	"istanbul",
	"berlin",
	"london",
}

// ChainConfig returns the configuration of a chain that applies given rule
// set from its first block.
func ChainConfig(rules string) (*params.ChainConfig, error) {
	level := -1
	for i, name := range Rules {
		if name == rules {
			level = i
			break
		}
	}
	if level < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown rule set %q", rules)
	}

	zero := big.NewInt(0)
	c := &params.ChainConfig{ChainID: big.NewInt(1)}
	if level >= 1 {
		c.HomesteadBlock = zero
	}
	if level >= 2 {
		c.EIP150Block = zero
	}
	if level >= 3 {
		c.EIP155Block = zero
		c.EIP158Block = zero
	}
	if level >= 4 {
		c.ByzantiumBlock = zero
	}
	if level >= 5 {
		c.ConstantinopleBlock = zero
		c.PetersburgBlock = zero
	}
	if level >= 6 {
		c.IstanbulBlock = zero
		c.MuirGlacierBlock = zero
	}
	if level >= 7 {
		c.BerlinBlock = zero
	}
	if level >= 8 {
		c.LondonBlock = zero
	}
	return c, nil
}

// Coinbase receives the fees of all simulated blocks.
var Coinbase = common.HexToAddress("0x000000000000000000000000000000000000c0de")

// EVMLedger is an in-memory ledger executing transactions with the
// go-ethereum virtual machine. Every transaction is executed in its own
// block.
type EVMLedger struct {
	config   *params.ChainConfig
	state    *state.StateDB
	gasLimit uint64
	number   uint64
	usedGas  uint64
}

var _ Ledger = (*EVMLedger)(nil)

// NewEVMLedger returns an empty ledger using given rule set and block gas
// limit.
func NewEVMLedger(rules string, blockGasLimit uint64) (*EVMLedger, error) {
	config, err := ChainConfig(rules)
	if err != nil {
		return nil, err
	}
	db := state.NewDatabase(rawdb.NewMemoryDatabase())
	st, err := state.New(types.EmptyRootHash, db, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &EVMLedger{
		config:   config,
		state:    st,
		gasLimit: blockGasLimit,
	}, nil
}

// SetBalance implements Ledger interface.
func (l *EVMLedger) SetBalance(addr common.Address, amount *big.Int) {
	l.state.SetBalance(addr, new(big.Int).Set(amount))
}

// Balance implements Ledger interface.
func (l *EVMLedger) Balance(addr common.Address) *big.Int {
	return new(big.Int).Set(l.state.GetBalance(addr))
}

// Apply implements Ledger interface.
func (l *EVMLedger) Apply(tx *types.Transaction) (*types.Receipt, error) {
	l.number++
	header := &types.Header{
		Number:     new(big.Int).SetUint64(l.number),
		Time:       l.number,
		GasLimit:   l.gasLimit,
		Difficulty: big.NewInt(1),
		Coinbase:   Coinbase,
	}
	if l.config.IsLondon(header.Number) {
		header.BaseFee = new(big.Int)
	}

	l.state.SetTxContext(tx.Hash(), 0)
	var usedGas uint64
	gp := new(core.GasPool).AddGas(l.gasLimit)
	receipt, err := core.ApplyTransaction(l.config, nil, &header.Coinbase, gp, l.state, header, tx, &usedGas, vm.Config{})
	if err != nil {
		return nil, err
	}
	l.usedGas += usedGas
	return receipt, nil
}

// GasUsed implements Ledger interface.
func (l *EVMLedger) GasUsed() uint64 {
	return l.usedGas
}
