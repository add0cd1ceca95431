package main

import (
	"flag"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/multisend/coin"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *flagaddress {
	var a flagaddress
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q address flag value. %s", name, err)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

type flagaddress common.Address

func (a flagaddress) String() string {
	return common.Address(a).Hex()
}

func (a *flagaddress) Set(raw string) error {
	if !common.IsHexAddress(raw) {
		return fmt.Errorf("invalid address %q", raw)
	}
	*a = flagaddress(common.HexToAddress(raw))
	return nil
}

// Address returns the flag value.
func (a *flagaddress) Address() common.Address {
	return common.Address(*a)
}

// flAmount returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// The value is nil if neither a default value nor an argument is given.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAmount(fl *flag.FlagSet, name, defaultVal, usage string) *coin.Flag {
	var f coin.Flag
	if defaultVal != "" {
		if err := f.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q amount flag value. %s", name, err)
		}
	}
	fl.Var(&f, name, usage)
	return &f
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *flagbytes {
	var b flagbytes
	if defaultVal != "" {
		if err := b.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q hex encoded flag value. %s", name, err)
		}
	}
	fl.Var(&b, name, usage)
	return &b
}

type flagbytes []byte

func (b flagbytes) String() string {
	if len(b) == 0 {
		return ""
	}
	return hexutil.Encode(b)
}

func (b *flagbytes) Set(raw string) error {
	val, err := hexutil.Decode(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}

// amountOrNil returns the flag amount or nil if not set.
func amountOrNil(f *coin.Flag) *big.Int {
	if f == nil || f.Amount == nil {
		return nil
	}
	return f.Amount
}
