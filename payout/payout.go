package payout

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/coin"
	"github.com/iov-one/multisend/errors"
)

// Supported payout list formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// CSVOptions configures reading of CSV payout lists.
type CSVOptions struct {
	// Delimiter separates columns. Comma is used if not set.
	Delimiter rune
	// Skip is the number of leading lines ignored, for example a
	// header.
	Skip int
}

// Read returns the payout list read from r in given format.
func Read(r io.Reader, format string, opts CSVOptions) ([]multisend.Payout, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r, opts)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown payout format %q", format)
	}
}

// ReadJSON reads a JSON payout list. Each element is either a two element
// array of address and amount or an object with address and amount
// attributes. Amounts are strings in a format accepted by
// coin.ParseHumanFormat or plain integer numbers of wei.
func ReadJSON(r io.Reader) ([]multisend.Payout, error) {
	var rows []json.RawMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot decode JSON: %s", err)
	}

	var errs error
	payouts := make([]multisend.Payout, 0, len(rows))
	for i, raw := range rows {
		p, err := decodeJSONRow(raw)
		if err != nil {
			errs = errors.Append(errs, errors.Field(rowName(i), errors.ErrInvalidInput, "%s", err))
			continue
		}
		payouts = append(payouts, p)
	}
	if errs != nil {
		return nil, errs
	}
	return payouts, nil
}

func decodeJSONRow(raw json.RawMessage) (multisend.Payout, error) {
	var address, amount json.RawMessage

	switch raw = bytes.TrimSpace(raw); {
	case bytes.HasPrefix(raw, []byte("[")):
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			return multisend.Payout{}, err
		}
		if len(pair) != 2 {
			return multisend.Payout{}, fmt.Errorf("want 2 elements, got %d", len(pair))
		}
		address, amount = pair[0], pair[1]
	case bytes.HasPrefix(raw, []byte("{")):
		var obj struct {
			Address json.RawMessage `json:"address"`
			Amount  json.RawMessage `json:"amount"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return multisend.Payout{}, err
		}
		address, amount = obj.Address, obj.Amount
	default:
		return multisend.Payout{}, fmt.Errorf("want an array or an object")
	}

	var addr string
	if err := json.Unmarshal(address, &addr); err != nil {
		return multisend.Payout{}, fmt.Errorf("address must be a string")
	}
	// Amount can be a string or a number literal.
	var value string
	if err := json.Unmarshal(amount, &value); err != nil {
		var n json.Number
		if err := json.Unmarshal(amount, &n); err != nil {
			return multisend.Payout{}, fmt.Errorf("amount must be a string or a number")
		}
		value = n.String()
	}
	return parseRow(addr, value)
}

// ReadCSV reads a CSV payout list. The first column is the address and the
// second one the amount. Other columns are ignored.
func ReadCSV(r io.Reader, opts CSVOptions) ([]multisend.Payout, error) {
	rd := csv.NewReader(r)
	if opts.Delimiter != 0 {
		rd.Comma = opts.Delimiter
	}
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	for i := 0; i < opts.Skip; i++ {
		if _, err := rd.Read(); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot read CSV file: %s", err)
		}
	}

	var (
		errs    error
		payouts []multisend.Payout
	)
	for i := 0; ; i++ {
		row, err := rd.Read()
		switch err {
		case nil:
			// All good.
		case io.EOF:
			if errs != nil {
				return nil, errs
			}
			return payouts, nil
		default:
			return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot read CSV row: %s", err)
		}

		if len(row) < 2 {
			errs = errors.Append(errs, errors.Field(rowName(i), errors.ErrInvalidInput,
				"want at least 2 columns, got %d", len(row)))
			continue
		}
		p, err := parseRow(row[0], row[1])
		if err != nil {
			errs = errors.Append(errs, errors.Field(rowName(i), errors.ErrInvalidInput, "%s", err))
			continue
		}
		payouts = append(payouts, p)
	}
}

func parseRow(address, amount string) (multisend.Payout, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return multisend.Payout{}, fmt.Errorf("invalid address %q", address)
	}
	value, err := coin.ParseHumanFormat(amount)
	if err != nil {
		return multisend.Payout{}, err
	}
	return multisend.Payout{Recipient: common.HexToAddress(address), Amount: value}, nil
}

func rowName(i int) string {
	return fmt.Sprintf("Payouts.%d", i)
}

// WriteJSON writes payouts as a JSON list of address and amount pairs,
// readable by ReadJSON.
func WriteJSON(w io.Writer, payouts []multisend.Payout) error {
	rows := make([][2]string, len(payouts))
	for i, p := range payouts {
		amount := p.Amount
		if amount == nil {
			amount = new(big.Int)
		}
		rows[i] = [2]string{p.Recipient.Hex(), amount.String()}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(rows); err != nil {
		return errors.Wrap(err, "encode payouts")
	}
	return nil
}
