/*
Package errors implements the error taxonomy used across multisend.

Reuse the root errors declared in this package wherever possible and only
register a new root error with Register(code, description) when none fits.
Create error instances with ErrXyz.New("..."), ErrXyz.Newf or
errors.Wrap(err, "...") at the point of failure so that a stack trace is
attached. Wrapping multiple times records the stack trace of the first wrap
only. Do not declare global instances like
`var ErrFoo = errors.ErrInvalidInput.New("foo")` or the stack trace is useless.

Test the kind of an error with the Is method of a root error, for example
ErrPayoutMismatch.Is(err). Is walks the whole chain of wrapped errors and the
members of errors clubbed together with Append.

Formatting:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
