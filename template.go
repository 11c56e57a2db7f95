package gobench

import "reflect"

// RegisterGeneric is the BENCHMARK_TEMPLATE equivalent: it registers a
// family whose callable is specialized over T, for benchmarking the same
// routine across instantiations (e.g. sort.Slice[int] vs sort.Slice[string])
// without hand-writing one wrapper per type. value is passed to every call
// of fn, letting one family benchmark a fixed input shape under a type
// parameter; pair this with Family.Arg/Range for per-size variants as usual.
//
// Since Go has no textual macro expansion, the type parameter is carried
// the way the original's BENCHMARK_TEMPLATE names carry it: appended to
// name as "name<T>", so distinct instantiations register under distinct
// family names instead of colliding.
func RegisterGeneric[T any](name string, value T, fn func(s *State, v T)) *Family {
	typeName := reflect.TypeOf((*T)(nil)).Elem().String()
	return Register(name+"<"+typeName+">", func(s *State) {
		fn(s, value)
	})
}
