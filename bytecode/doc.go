// Package bytecode models the compiled code units consumed by the scanner.
//
// A Code is one compiled unit: a flat instruction stream (two bytes per
// instruction) plus side tables of symbol names and constant values. A
// constant may itself be a nested *Code, which is how inner function and
// block bodies are reached. Code values are immutable after construction:
// constructors copy their input slices, all fields are unexported, and
// collections are exposed through index-based accessors.
//
// Units are produced by an external compiler; this package only models
// them. It deliberately knows nothing about patterns or call sites.
//
// An Arena assigns each distinct Code a stable integer Handle. Handles
// track object identity, not structure: two structurally identical units
// loaded separately get distinct handles, which is what per-unit result
// maps key on.
package bytecode
