package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/coin"
	"github.com/iov-one/multisend/emit"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/payload"
	"github.com/iov-one/multisend/synth"
)

func cmdView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display a summary of transactions read from the standard input.
Use this to review a cascade before funding its root address.
`)
		fl.PrintDefaults()
	}
	codeFl := flHex(fl, "code", "", "Hex encoded creation code of the distribution contract. The built-in contract is used if not provided.")
	fl.Parse(args)

	enc := payload.DefaultEncoder
	if len(*codeFl) != 0 {
		var err error
		if enc, err = payload.NewEncoder(*codeFl); err != nil {
			return err
		}
	}

	txs, err := emit.Read(input)
	if err != nil {
		return errors.Wrap(err, "cannot read transactions")
	}
	if len(txs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no input data")
	}

	views := make([]txView, 0, len(txs))
	for i, tx := range txs {
		sender, err := synth.Sender(tx)
		if err != nil {
			return errors.Wrapf(err, "transaction %d", i)
		}
		arguments, err := enc.Decode(tx.Data())
		if err != nil {
			return errors.Wrapf(err, "transaction %d", i)
		}
		funding := multisend.Funding(tx, sender)
		v := txView{
			Index:     i,
			Hash:      tx.Hash().Hex(),
			Sender:    sender.Hex(),
			Gas:       tx.Gas(),
			GasPrice:  coin.Format(tx.GasPrice()),
			Value:     coin.Format(tx.Value()),
			Funding:   funding.Amount.String(),
			Remainder: arguments.Remainder.Hex(),
		}
		for j, r := range arguments.Recipients {
			v.Payouts = append(v.Payouts, [2]string{r.Hex(), arguments.Amounts[j].String()})
		}
		views = append(views, v)
	}

	return writeJSON(output, views)
}

type txView struct {
	Index     int         `json:"index"`
	Hash      string      `json:"hash"`
	Sender    string      `json:"sender"`
	Gas       uint64      `json:"gas"`
	GasPrice  string      `json:"gas_price"`
	Value     string      `json:"value"`
	Funding   string      `json:"funding"`
	Remainder string      `json:"remainder"`
	Payouts   [][2]string `json:"payouts"`
}
