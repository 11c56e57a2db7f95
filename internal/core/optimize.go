package core

import (
	"runtime"
	"sync/atomic"
)

// DoNotOptimize forces the compiler to treat x as observed, the closest
// idiomatic Go equivalent of the original's inline-asm "escape" hint.
// Go's optimizer is considerably weaker than a C++ compiler's, so in
// practice this is usually a no-op; it is provided anyway so callers can
// write benchmarks that port cleanly and keep working if Go's compiler
// ever learns to eliminate more dead stores.
func DoNotOptimize(x any) {
	runtime.KeepAlive(x)
}

// clobberSink defeats a pure load/store-elimination optimization across
// calls; writes to it are never provably dead because the compiler
// cannot see every caller.
var clobberSink uint64

// ClobberMemory hints that memory should be treated as written since the
// last DoNotOptimize/ClobberMemory call. There is no portable way to
// issue a true compiler memory barrier from Go; this performs an atomic
// store a real compiler cannot prove unobservable, which is the nearest
// available approximation.
func ClobberMemory() {
	atomic.AddUint64(&clobberSink, 1)
	runtime.KeepAlive(&clobberSink)
}
