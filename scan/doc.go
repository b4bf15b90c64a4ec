// Package scan extracts constant-argument call sites from compiled code
// units.
//
// The scanner recognizes the instruction sequence that loads a callable by
// name, optionally walks an attribute chain, pushes zero or more constant
// arguments, and invokes with positional arguments only. Each recognized
// site is reported as a Call holding the dotted callable name and the
// decoded constant arguments. Sites whose invocation argument count
// disagrees with the number of constant loads used variable, starred, or
// keyword arguments; those are skipped whole rather than reported
// partially.
//
// Recurse drives an arbitrary per-unit analysis across a unit and every
// nested unit reachable through its constant table, exactly once per
// distinct unit.
package scan
