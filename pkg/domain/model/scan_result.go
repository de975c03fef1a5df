package model

// ScanResult is the ordered set of creatives discovered by one scan. Order is discovery
// order. Entries are addressed by Location for in-place updates.
type ScanResult struct {
	creatives []Creative
	index     map[string]int
}

// NewScanResult returns an empty result.
func NewScanResult() *ScanResult {
	return &ScanResult{index: make(map[string]int)}
}

// Add appends c unless a creative with the same location is already present.
func (r *ScanResult) Add(c Creative) bool {
	if _, ok := r.index[c.Location]; ok {
		return false
	}
	r.index[c.Location] = len(r.creatives)
	r.creatives = append(r.creatives, c.Clone())
	return true
}

// Len returns the number of creatives. A nil result is empty.
func (r *ScanResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.creatives)
}

// Get returns a copy of the creative stored at location.
func (r *ScanResult) Get(location string) (Creative, bool) {
	if r == nil {
		return Creative{}, false
	}
	i, ok := r.index[location]
	if !ok {
		return Creative{}, false
	}
	return r.creatives[i].Clone(), true
}

// MarkConverted flips the converted flag of the creative at location. The flag never
// reverts. It returns false if location is unknown.
func (r *ScanResult) MarkConverted(location string) bool {
	if r == nil {
		return false
	}
	i, ok := r.index[location]
	if !ok {
		return false
	}
	r.creatives[i].Converted = true
	return true
}

// Creatives returns a copy of all creatives in discovery order.
func (r *ScanResult) Creatives() []Creative {
	if r == nil {
		return nil
	}
	out := make([]Creative, len(r.creatives))
	for i, c := range r.creatives {
		out[i] = c.Clone()
	}
	return out
}

// ConvertedCount returns how many creatives have been converted.
func (r *ScanResult) ConvertedCount() int {
	n := 0
	if r == nil {
		return n
	}
	for _, c := range r.creatives {
		if c.Converted {
			n++
		}
	}
	return n
}
