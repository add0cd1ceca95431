// Package coin converts amounts of the native ledger currency between wei
// and human readable units.
package coin
