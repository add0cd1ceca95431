package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/builder"
	"github.com/iov-one/multisend/coin"
	"github.com/iov-one/multisend/emit"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/synth"
	"github.com/iov-one/multisend/verify"
)

func cmdBuild(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a payout list from the standard input and build a cascade of transactions
delivering all payouts. Transactions are written in the order they must be
submitted. The sender of the first transaction must be funded with the exact
amount that is logged before the transactions are submitted.

The cascade is always verified with a simulated ledger first. Nothing is
written if the verification fails.
`)
		fl.PrintDefaults()
	}
	var (
		cfg         = registerConfigFlags(fl)
		src         = registerPayoutFlags(fl)
		remainderFl = flAddress(fl, "remainder", env(envRemainder, defaultRemainder), "Address receiving all value that cannot be delivered.")
		batchFl     = fl.Int("batch", 0, "Maximum number of payouts delivered by a single transaction. Overwrites the configuration.")
		outFormatFl = fl.String("out", emit.FormatRaw, "Output format, raw or web3.")
		recoverFl   = fl.String("recoverer", "eth", "Signature recovery implementation, eth or koblitz.")
		workersFl   = fl.Int("workers", 0, "Number of transactions synthesized at the same time. All CPUs are used if not set.")
	)
	fl.Parse(args)

	if *outFormatFl != emit.FormatRaw && *outFormatFl != emit.FormatWeb3 {
		flagDie("invalid \"out\" value: %q", *outFormatFl)
	}
	var recoverer synth.Recoverer
	switch *recoverFl {
	case "eth":
		recoverer = synth.EthRecoverer{}
	case "koblitz":
		recoverer = synth.KoblitzRecoverer{}
	default:
		flagDie("invalid \"recoverer\" value: %q", *recoverFl)
	}

	ctx, err := newContext(*cfg.logLevel)
	if err != nil {
		return err
	}
	params, err := cfg.params()
	if err != nil {
		return err
	}
	if *batchFl != 0 {
		params.MaxBatchSize = *batchFl
	}
	enc, err := cfg.encoder()
	if err != nil {
		return err
	}
	payouts, err := src.read(input)
	if err != nil {
		return errors.Wrap(err, "cannot read payouts")
	}

	b := builder.NewBuilder(builder.NewFactory(params, enc, synth.New(params, recoverer)))
	if *workersFl > 0 {
		b.Workers = *workersFl
	}
	tree, err := b.Build(ctx, payouts, remainderFl.Address(), params.MaxBatchSize)
	if err != nil {
		return errors.Wrap(err, "cannot build cascade")
	}

	report, err := verify.NewVerifier(params, enc).Verify(ctx, tree.Raw(), payouts)
	if err != nil {
		return errors.Wrap(err, "verification failed, no transactions written")
	}

	// Serialize everything before writing, so that the output is either
	// complete or empty.
	var buf bytes.Buffer
	if err := emit.Write(&buf, tree.Raw(), *outFormatFl); err != nil {
		return err
	}
	if _, err := buf.WriteTo(output); err != nil {
		return errors.Wrap(err, "write")
	}

	multisend.GetLogger(ctx).Info("fund the root address before submitting",
		"root", tree.Root.Hex(),
		"funding", coin.Format(tree.Funding),
		"funding_wei", tree.Funding.String(),
		"transactions", len(tree.Transactions),
		"gas_used", report.GasUsed,
		"stranded", coin.Format(report.Stranded))
	return nil
}
