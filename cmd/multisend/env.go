package main

import (
	"fmt"
	"os"
)

// Environment variables providing flag defaults.
const (
	envRemainder = "MULTISEND_REMAINDER"
	envGasPrice  = "MULTISEND_GAS_PRICE"
	// envDebug enables stack traces in error messages when set to a non
	// empty value.
	envDebug = "MULTISEND_DEBUG"
)

// defaultRemainder receives everything that could not be delivered, unless
// another address is provided.
const defaultRemainder = "0xda4a4626d3e16e094de3225a751aab7128e96526"

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// flagDie terminates the program when a flag parsing was not successful. This
// is a variable so that it can be overwritten for the tests.
var flagDie = func(description string, args ...interface{}) {
	s := fmt.Sprintf(description, args...)
	fmt.Fprintln(os.Stderr, s)
	os.Exit(2)
}
