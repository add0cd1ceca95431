// Package payout reads and writes payout lists.
package payout
