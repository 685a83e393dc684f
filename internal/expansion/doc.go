/*
Package expansion holds the two data types the macro language resolves
against.

An Expansion is an ordered list of (value, index) fields. Field 0 is the
canonical value; further fields carry the pieces a brace expansion was
assembled from so that positional indirections (`@1`, `@2`, ...) can reach
them.

A Context is a parent-linked scope holding named defines and a stack of
Expansions. Every local mutation bumps the context's marker, which callers
use to invalidate anything they derived from the context.
*/
package expansion
