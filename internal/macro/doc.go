/*
Package macro implements the embedded macro language used in authored model
text.

Text is expanded in two passes. The interpolation pass evaluates a node tree
against an expansion.Context:

	$( expr )               equation, computed and spliced as a number
	$$( cond )( a )( b )    condition, a when cond is nonzero, b otherwise
	@name  @1  @@2  @[..]   indirection into defines or positional expansions
	$map( body )            filter applied to each element of a brace group
	$reduce( body )         filter folding the elements of a brace group

The brace pass turns the resulting flat string into a list of Expansions:

	a{1,2}b     -> a1b, a2b
	{1:3}       -> 1, 2, 3
	{0:2:6}     -> 0, 2, 4, 6
	{2*x}       -> x, x

An EmbeddedString caches the result of its last interpolation per context
and change marker, so repeated expansion against an unchanged scope is free.
*/
package macro
