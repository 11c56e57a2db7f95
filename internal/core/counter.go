package core

// CounterFlags is a bitset controlling how a Counter's raw accumulated
// value is turned into a reported number.
type CounterFlags uint8

const (
	// CounterRate divides the value by elapsed seconds.
	CounterRate CounterFlags = 1 << iota
	// CounterAvgThreads divides the value by the instance's thread count.
	CounterAvgThreads
	// CounterAvgIterations divides the value by total iterations executed.
	CounterAvgIterations
	// CounterIterationInvariant multiplies the value by total iterations
	// executed (the value was supplied "per iteration").
	CounterIterationInvariant
	// CounterInvert replaces the final value with its reciprocal. Applied
	// after every other flag regardless of bit order.
	CounterInvert
)

// Counter is a single named, flagged numeric accumulator.
type Counter struct {
	Name  string
	Value float64
	Flags CounterFlags
	// Base1024 selects IEC (1024) suffixing for a reporter that renders
	// human units; Base1000 (the zero value) is SI.
	Base1024 bool
}

// Finalized applies the counter's flags against the run's elapsed
// seconds, thread count and total iteration count, returning the value a
// reporter should print. Invert is always applied last, matching the
// harness's counter-flag invariant.
func (c Counter) Finalized(elapsedSeconds float64, threads int, totalIterations int64) float64 {
	v := c.Value

	if c.Flags&CounterIterationInvariant != 0 {
		v *= float64(totalIterations)
	}
	if c.Flags&CounterRate != 0 {
		if elapsedSeconds != 0 {
			v /= elapsedSeconds
		} else {
			v = 0
		}
	}
	if c.Flags&CounterAvgThreads != 0 && threads != 0 {
		v /= float64(threads)
	}
	if c.Flags&CounterAvgIterations != 0 && totalIterations != 0 {
		v /= float64(totalIterations)
	}
	if c.Flags&CounterInvert != 0 {
		if v != 0 {
			v = 1 / v
		}
	}
	return v
}

// Counters is an insertion-ordered name -> Counter map, matching the
// harness's "counter map" data type: ordering is preserved for reporters
// that emit columns in registration order.
type Counters struct {
	order  []string
	values map[string]Counter
}

// NewCounters returns an empty Counters map.
func NewCounters() Counters {
	return Counters{values: make(map[string]Counter)}
}

// Add accumulates value into the named counter, creating it (with flags)
// on first use. Subsequent calls with the same name add to the stored
// value; the flags passed on the call that creates the counter win.
func (c *Counters) Add(name string, value float64, flags CounterFlags) {
	c.ensure()
	if existing, ok := c.values[name]; ok {
		existing.Value += value
		c.values[name] = existing
		return
	}
	c.order = append(c.order, name)
	c.values[name] = Counter{Name: name, Value: value, Flags: flags}
}

// Set overwrites the named counter's raw value and flags outright.
func (c *Counters) Set(name string, value float64, flags CounterFlags) {
	c.ensure()
	if _, ok := c.values[name]; !ok {
		c.order = append(c.order, name)
	}
	c.values[name] = Counter{Name: name, Value: value, Flags: flags}
}

// Get returns the named counter and whether it is present.
func (c Counters) Get(name string) (Counter, bool) {
	if c.values == nil {
		return Counter{}, false
	}
	v, ok := c.values[name]
	return v, ok
}

// Names returns counter names in insertion order.
func (c Counters) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len reports how many counters are present.
func (c Counters) Len() int { return len(c.order) }

func (c *Counters) ensure() {
	if c.values == nil {
		c.values = make(map[string]Counter)
	}
}

// Merge returns a new Counters that is the additive merge of c and other:
// counters present in both have their raw Values summed; a counter
// present in only one map is carried through unchanged. Used to combine
// per-thread counter contributions into one RunRecord.
func (c Counters) Merge(other Counters) Counters {
	out := NewCounters()
	for _, name := range c.Names() {
		v, _ := c.Get(name)
		out.order = append(out.order, name)
		out.values[name] = v
	}
	for _, name := range other.Names() {
		ov, _ := other.Get(name)
		if existing, ok := out.values[name]; ok {
			existing.Value += ov.Value
			out.values[name] = existing
			continue
		}
		out.order = append(out.order, name)
		out.values[name] = ov
	}
	return out
}

// Clone returns an independent copy of c.
func (c Counters) Clone() Counters {
	out := NewCounters()
	for _, name := range c.Names() {
		v, _ := c.Get(name)
		out.order = append(out.order, name)
		out.values[name] = v
	}
	return out
}
