package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/multisend/emit"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/verify"
)

func cmdVerify(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read transactions from the standard input and replay them, in order, with a
simulated ledger. Only the sender of the first transaction is funded. Ensure
that every payout of the given payout list is delivered exactly.

A JSON report is written to the standard output, even if the verification
fails.
`)
		fl.PrintDefaults()
	}
	var (
		cfg       = registerConfigFlags(fl)
		src       = registerPayoutFlags(fl)
		payoutsFl = fl.String("payouts", "", "Path to the payout list the transactions must deliver. Required.")
	)
	fl.Parse(args)

	if *payoutsFl == "" {
		flagDie("payout list path is required")
	}

	ctx, err := newContext(*cfg.logLevel)
	if err != nil {
		return err
	}
	params, err := cfg.params()
	if err != nil {
		return err
	}
	enc, err := cfg.encoder()
	if err != nil {
		return err
	}
	payouts, err := src.readFile(*payoutsFl)
	if err != nil {
		return errors.Wrap(err, "cannot read payouts")
	}
	txs, err := emit.Read(input)
	if err != nil {
		return errors.Wrap(err, "cannot read transactions")
	}

	report, verr := verify.NewVerifier(params, enc).Verify(ctx, txs, payouts)
	if report == nil {
		return verr
	}
	if err := writeJSON(output, newReportView(report, verr)); err != nil {
		return err
	}
	return verr
}

type reportView struct {
	Valid            bool          `json:"valid"`
	Error            string        `json:"error,omitempty"`
	Root             string        `json:"root"`
	Funding          string        `json:"funding"`
	GasUsed          uint64        `json:"gas_used"`
	Fees             string        `json:"fees"`
	Remainder        string        `json:"remainder,omitempty"`
	RemainderBalance string        `json:"remainder_balance"`
	Stranded         string        `json:"stranded"`
	Transactions     []receiptView `json:"transactions"`
	SendFailures     [][2]string   `json:"send_failures,omitempty"`
}

type receiptView struct {
	Hash    string `json:"hash"`
	Sender  string `json:"sender"`
	GasUsed uint64 `json:"gas_used"`
	Success bool   `json:"success"`
}

func newReportView(r *verify.Report, verr error) reportView {
	v := reportView{
		Valid:            verr == nil,
		Root:             r.Root.Hex(),
		Funding:          r.Funding.String(),
		GasUsed:          r.GasUsed,
		Fees:             r.Fees.String(),
		RemainderBalance: r.RemainderBalance.String(),
		Stranded:         r.Stranded.String(),
	}
	if verr != nil {
		v.Error = verr.Error()
	}
	if r.Remainder != (common.Address{}) {
		v.Remainder = r.Remainder.Hex()
	}
	for _, rc := range r.Receipts {
		v.Transactions = append(v.Transactions, receiptView{
			Hash:    rc.Hash.Hex(),
			Sender:  rc.Sender.Hex(),
			GasUsed: rc.GasUsed,
			Success: rc.Success,
		})
	}
	for _, f := range r.SendFailures {
		v.SendFailures = append(v.SendFailures, [2]string{f.Recipient.Hex(), f.Amount.String()})
	}
	return v
}
