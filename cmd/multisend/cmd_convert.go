package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/payout"
)

func cmdConvert(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a payout list from the standard input and write it as a JSON list of
address and wei amount pairs. Use this to normalize a CSV file or amounts given
in other units before building a cascade.
`)
		fl.PrintDefaults()
	}
	src := registerPayoutFlags(fl)
	fl.Parse(args)

	payouts, err := src.read(input)
	if err != nil {
		return errors.Wrap(err, "cannot read payouts")
	}
	return payout.WriteJSON(output, payouts)
}
