package scan

import (
	"github.com/cloudcmds/callscan/bytecode"
	"github.com/hashicorp/go-multierror"
)

// Outcome holds the analysis result for one unit, or the error that unit's
// analysis produced. One failed unit does not stop the walk.
type Outcome[T any] struct {
	Unit  *bytecode.Code
	Value T
	Err   error
}

// Recurse applies fn to unit and to every nested unit reachable through
// constant tables, keyed by arena handle. A unit's outcome is recorded
// before its children are visited, so a unit reachable through multiple
// parents, or through a cycle, is analyzed exactly once. Sibling order is
// unspecified.
func Recurse[T any](arena *bytecode.Arena, unit *bytecode.Code, fn func(*bytecode.Code) (T, error)) map[bytecode.Handle]Outcome[T] {
	results := make(map[bytecode.Handle]Outcome[T])
	recurse(arena, unit, fn, results)
	return results
}

func recurse[T any](arena *bytecode.Arena, unit *bytecode.Code, fn func(*bytecode.Code) (T, error), results map[bytecode.Handle]Outcome[T]) {
	handle := arena.Intern(unit)
	if _, ok := results[handle]; ok {
		return
	}
	value, err := fn(unit)
	results[handle] = Outcome[T]{Unit: unit, Value: value, Err: err}
	for i := 0; i < unit.ConstantCount(); i++ {
		if child, ok := unit.ConstantAt(i).(*bytecode.Code); ok {
			recurse(arena, child, fn, results)
		}
	}
}

// RecursiveCalls scans unit and every nested unit for constant-argument
// call sites.
func RecursiveCalls(s *Scanner, arena *bytecode.Arena, unit *bytecode.Code) map[bytecode.Handle]Outcome[[]Call] {
	return Recurse(arena, unit, s.Scan)
}

// CombineErrors flattens every per-unit failure in results into a single
// error, or nil if every unit was analyzed cleanly. Use this after a walk
// when any malformed unit should fail the whole operation.
func CombineErrors[T any](results map[bytecode.Handle]Outcome[T]) error {
	var combined *multierror.Error
	for _, outcome := range results {
		if outcome.Err != nil {
			combined = multierror.Append(combined, outcome.Err)
		}
	}
	return combined.ErrorOrNil()
}

// NamedCalls filters a walk's outcomes down to the calls of one dotted
// function name, in no particular unit order. Downstream dependency
// discovery usually cares about one specific callable at a time.
func NamedCalls(results map[bytecode.Handle]Outcome[[]Call], function string) []Call {
	var out []Call
	for _, outcome := range results {
		for _, call := range outcome.Value {
			if call.Function == function {
				out = append(out, call)
			}
		}
	}
	return out
}
