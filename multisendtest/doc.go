/*
Package multisendtest provides helpers used to test the multisend packages.
Use its assert subpackage for assertions.
*/
package multisendtest
