// Package compute evaluates the arithmetic text produced by equation and
// condition macros.
//
// Expressions are parsed with the HCL native syntax, so the usual operators
// (+ - * / %, comparisons, && || !, and the ?: conditional) are available
// together with a small table of math functions. Results are always numbers:
// booleans become 1 or 0.
package compute
