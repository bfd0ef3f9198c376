// Package dual implements forward-mode automatic differentiation with
// dual numbers.
//
// A dual number is a pair a + a'ε with ε² = 0. Arithmetic on the pair
// follows the usual calculus rules (linearity, product rule, quotient
// rule, power rule), so the ε component of a computation carries the
// exact first derivative of the value component.
//
// The package closes its arithmetic over the Scalar interface, which is
// implemented by Float (a plain value) and Number (a dual pair). The
// Real and Dual parts of a Number may themselves be Numbers; nesting
// duals this way is what makes repeated differentiation work, since the
// inner structure then encodes higher derivatives.
//
// Plain values are promoted implicitly: anywhere a Float meets a Number
// it is treated as a Number with a zero dual part (a constant has zero
// derivative). Promotion applies symmetrically to both operand
// positions.
//
// # Fault model
//
// Operations are pure and total except for two arithmetic faults:
// division by a value whose real component is exactly zero, and domain
// violations (for example a non-integer power of a negative value).
// These panic with *ArithmeticError at the offending operation. Try
// converts a panicking computation into an ordinary error return;
// higher layers (the derivative operator, the expression evaluator, the
// CLI) recover through it so no panic escapes a public entry point that
// returns an error.
package dual
