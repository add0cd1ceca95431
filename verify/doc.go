/*
Package verify replays a transaction cascade on a simulated ledger and
checks that every payout was delivered.

No cascade should ever be published without a successful verification. A
broken cascade may leave funds on an address nobody controls.
*/
package verify
