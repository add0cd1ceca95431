package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/multisend/multisendtest/assert"
)

func TestAddressFlag(t *testing.T) {
	cases := map[string]struct {
		args    []string
		def     string
		want    common.Address
		wantErr bool
	}{
		"only default": {
			def:  "0xda4a4626d3e16e094de3225a751aab7128e96526",
			want: common.HexToAddress("0xda4a4626d3e16e094de3225a751aab7128e96526"),
		},
		"default overwritten": {
			args: []string{"-a", "0x00000000000000000000000000000000000000aa"},
			def:  "0xda4a4626d3e16e094de3225a751aab7128e96526",
			want: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		},
		"no default": {
			want: common.Address{},
		},
		"invalid default": {
			def:     "0xaa",
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fl := flag.NewFlagSet("", flag.ContinueOnError)
			fl.SetOutput(ioutil.Discard)
			var res *flagaddress
			failed := observeFlagDie(t, func() {
				res = flAddress(fl, "a", tc.def, "")
				if err := fl.Parse(tc.args); err != nil {
					flagDie("parse: %s", err)
				}
			})
			assert.Equal(t, tc.wantErr, failed)
			if !tc.wantErr {
				assert.Equal(t, tc.want, res.Address())
			}
		})
	}
}

func TestAmountFlag(t *testing.T) {
	cases := map[string]struct {
		args    []string
		def     string
		want    *big.Int
		wantErr bool
	}{
		"only default": {
			def:  "20gwei",
			want: big.NewInt(20000000000),
		},
		"default overwritten": {
			args: []string{"-a", "1.5 kwei"},
			def:  "20gwei",
			want: big.NewInt(1500),
		},
		"not set": {
			want: nil,
		},
		"negative argument": {
			args:    []string{"-a", "-1"},
			wantErr: true,
		},
		"invalid default": {
			def:     "1 dogecoin",
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fl := flag.NewFlagSet("", flag.ContinueOnError)
			fl.SetOutput(ioutil.Discard)
			var res *big.Int
			failed := observeFlagDie(t, func() {
				f := flAmount(fl, "a", tc.def, "")
				if err := fl.Parse(tc.args); err != nil {
					flagDie("parse: %s", err)
				}
				res = amountOrNil(f)
			})
			assert.Equal(t, tc.wantErr, failed)
			if !tc.wantErr {
				assert.BigEqual(t, tc.want, res)
			}
		})
	}
}

func TestHexFlag(t *testing.T) {
	cases := map[string]struct {
		args    []string
		def     string
		want    []byte
		wantErr bool
	}{
		"only default": {
			def:  "0x6060",
			want: []byte{0x60, 0x60},
		},
		"default overwritten": {
			args: []string{"-a", "0x01"},
			def:  "0x6060",
			want: []byte{0x01},
		},
		"not set": {
			want: nil,
		},
		"missing prefix": {
			args:    []string{"-a", "6060"},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fl := flag.NewFlagSet("", flag.ContinueOnError)
			fl.SetOutput(ioutil.Discard)
			var res *flagbytes
			failed := observeFlagDie(t, func() {
				res = flHex(fl, "a", tc.def, "")
				if err := fl.Parse(tc.args); err != nil {
					flagDie("parse: %s", err)
				}
			})
			assert.Equal(t, tc.wantErr, failed)
			if !tc.wantErr {
				assert.Equal(t, tc.want, []byte(*res))
			}
		})
	}
}

// observeFlagDie runs given function and returns true if flagDie was
// called. flagDie terminates the process, so the call is turned into a
// panic that is recovered here.
func observeFlagDie(t testing.TB, fn func()) (died bool) {
	t.Helper()

	type dieMsg string

	original := flagDie
	flagDie = func(description string, args ...interface{}) {
		panic(dieMsg(fmt.Sprintf(description, args...)))
	}
	defer func() { flagDie = original }()

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(dieMsg); !ok {
				panic(r)
			}
			died = true
		}
	}()

	fn()
	return false
}
