package pineda

// Source supplies uniform doubles in [0,1). *rand.Rand satisfies it.
//
// A Source is used by one network at a time; hosts training several networks
// concurrently give each its own Source.
type Source interface {
	Float64() float64
}

// sampleIndex draws an index uniformly from [0, n)
func sampleIndex(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	// r*n can round up to n for r just below 1
	if i >= n {
		i = n - 1
	}
	return i
}
