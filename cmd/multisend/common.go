package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/coin"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/payload"
	"github.com/iov-one/multisend/payout"
	"github.com/tendermint/tendermint/libs/log"
)

// logOutput is where all commands write their logs.
var logOutput io.Writer = os.Stderr

// newContext returns a context carrying a logger that writes entries of at
// least given level.
func newContext(level string) (context.Context, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(logOutput)), opt)
	return multisend.WithLogger(context.Background(), logger.With("module", "multisend")), nil
}

// configFlags are the flags of all commands that build or replay
// transactions.
type configFlags struct {
	config   *string
	rules    *string
	gasPrice *coin.Flag
	code     *flagbytes
	logLevel *string
}

func registerConfigFlags(fl *flag.FlagSet) *configFlags {
	return &configFlags{
		config:   fl.String("config", "", "Path to a JSON file with parameters. Defaults are used for all parameters that are not provided."),
		rules:    fl.String("rules", "", "Ledger rule set used by the simulation, for example frontier or byzantium. Overwrites the configuration."),
		gasPrice: flAmount(fl, "gas-price", env(envGasPrice, ""), "Gas price, for example 20gwei. Overwrites the configuration."),
		code:     flHex(fl, "code", "", "Hex encoded creation code of the distribution contract. The built-in contract is used if not provided."),
		logLevel: fl.String("log-level", "info", "Log level, one of debug, info, error or none."),
	}
}

// params returns the validated parameters.
func (c *configFlags) params() (multisend.Params, error) {
	p := multisend.DefaultParams()
	if *c.config != "" {
		fd, err := os.Open(*c.config)
		if err != nil {
			return p, errors.Wrapf(errors.ErrInvalidInput, "cannot open configuration: %s", err)
		}
		defer fd.Close()
		if p, err = multisend.LoadParams(fd); err != nil {
			return p, errors.Wrap(err, "configuration")
		}
	}
	if *c.rules != "" {
		p.Rules = *c.rules
	}
	if price := amountOrNil(c.gasPrice); price != nil {
		p.GasPrice = price
	}
	if err := p.Validate(); err != nil {
		return p, errors.Wrap(err, "invalid parameters")
	}
	return p, nil
}

func (c *configFlags) encoder() (*payload.Encoder, error) {
	if len(*c.code) == 0 {
		return payload.DefaultEncoder, nil
	}
	return payload.NewEncoder(*c.code)
}

// payoutFlags are the flags describing a payout list source.
type payoutFlags struct {
	format *string
	delim  *string
	skip   *int
}

func registerPayoutFlags(fl *flag.FlagSet) *payoutFlags {
	return &payoutFlags{
		format: fl.String("format", payout.FormatJSON, "Payout list format, json or csv."),
		delim:  fl.String("delim", ",", "CSV delimiter."),
		skip:   fl.Int("skip", 0, "Skip first N lines of the CSV file. Use this if the CSV file contains header."),
	}
}

func (p *payoutFlags) read(r io.Reader) ([]multisend.Payout, error) {
	if len([]rune(*p.delim)) != 1 {
		flagDie(`"delim" must be a single character`)
	}
	return payout.Read(r, *p.format, payout.CSVOptions{
		Delimiter: []rune(*p.delim)[0],
		Skip:      *p.skip,
	})
}

func (p *payoutFlags) readFile(path string) ([]multisend.Payout, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot open payout list: %s", err)
	}
	defer fd.Close()
	return p.read(fd)
}

// writeJSON writes an indented JSON representation of given value.
func writeJSON(w io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot JSON serialize: %s", err)
	}
	if _, err := w.Write(append(pretty, '\n')); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}
