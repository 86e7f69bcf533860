package reqkit

// Merge combines sources left to right into a new Options. For every key the
// result holds the value from the last source that sets it to something other
// than Undefined; a later Undefined never erases an earlier value. nil values
// are ordinary values and do override. Sources are not modified.
func Merge(sources ...Options) Options {
	size := 0
	for _, src := range sources {
		size += len(src)
	}

	merged := make(Options, size)
	for _, src := range sources {
		for k, v := range src {
			if IsUndefined(v) {
				continue
			}
			merged[k] = v
		}
	}
	return merged
}

// Clone returns a shallow copy of o without its Undefined entries.
func (o Options) Clone() Options {
	return Merge(o)
}

// Lookup returns the value stored under key. Missing and Undefined entries
// both report false.
func (o Options) Lookup(key string) (any, bool) {
	v, ok := o[key]
	if !ok || IsUndefined(v) {
		return nil, false
	}
	return v, true
}
