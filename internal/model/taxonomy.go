package model

// Entry is one category in a loaded taxonomy snapshot: a positive unique id
// and a root-to-leaf breadcrumb path. Entries are built once by the loader
// and never mutated afterwards.
type Entry struct {
	ID   int
	Path []string // e.g. ["Electronics", "Telephony", "Mobile Phones"]
}

// Leaf returns the last breadcrumb segment.
func (e Entry) Leaf() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}

// Depth returns the number of breadcrumb segments.
func (e Entry) Depth() int {
	return len(e.Path)
}
