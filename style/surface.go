package style

// Write is one formatted variable assignment delivered to the host
type Write struct {
	Key   string
	Value string
}

// Surface receives the batched writes, exactly one Apply per frame flush
// Order within the slice is the commit order the host must preserve
type Surface interface {
	Apply(writes []Write)
}
