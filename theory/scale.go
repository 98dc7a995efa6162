package theory

import "sort"

// Scale is an ordered, cyclic sequence of semitone intervals. The intervals
// sum to 12 over one cycle. A mode is a rotation starting at a different
// index of the same sequence.
type Scale struct {
	Name      string
	Intervals []int
}

// Degrees returns the number of scale degrees per octave.
func (s Scale) Degrees() int {
	return len(s.Intervals)
}

// Mode returns the interval sequence rotated to start at the given degree.
// The mode index wraps, so Mode(7) of a heptatonic scale equals Mode(0).
func (s Scale) Mode(mode int) []int {
	n := len(s.Intervals)
	if n == 0 {
		return nil
	}
	mode = ((mode % n) + n) % n
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = s.Intervals[(mode+i)%n]
	}
	return out
}

// Offsets returns the cumulative semitone offset of each degree from the
// mode's root: offsets[0] is always 0 and len(offsets) == Degrees().
func Offsets(intervals []int) []int {
	out := make([]int, len(intervals))
	sum := 0
	for i := range intervals {
		out[i] = sum
		sum += intervals[i]
	}
	return out
}

// Repository is a read-only catalog of scales, queried by name and mode.
// Lookups that miss report ok=false rather than failing hard.
type Repository struct {
	scales map[string]Scale
}

// NewRepository returns a repository loaded with the built-in catalog.
func NewRepository() *Repository {
	r := &Repository{scales: make(map[string]Scale)}
	for _, s := range builtinScales {
		r.Add(s)
	}
	return r
}

// Add registers a scale, replacing any existing scale of the same name.
func (r *Repository) Add(s Scale) {
	r.scales[s.Name] = s
}

// GetScale resolves a scale name and mode into a rotated interval sequence.
func (r *Repository) GetScale(name string, mode int) ([]int, bool) {
	s, ok := r.scales[name]
	if !ok {
		return nil, false
	}
	return s.Mode(mode), true
}

// GetNames returns all scale names, sorted for stable display order.
func (r *Repository) GetNames() []string {
	names := make([]string, 0, len(r.scales))
	for name := range r.scales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtinScales = []Scale{
	{Name: "Major", Intervals: []int{2, 2, 1, 2, 2, 2, 1}},
	{Name: "Harmonic Minor", Intervals: []int{2, 1, 2, 2, 1, 3, 1}},
	{Name: "Melodic Minor", Intervals: []int{2, 1, 2, 2, 2, 2, 1}},
	{Name: "Major Pentatonic", Intervals: []int{2, 2, 3, 2, 3}},
	{Name: "Minor Pentatonic", Intervals: []int{3, 2, 2, 3, 2}},
	{Name: "Blues", Intervals: []int{3, 2, 1, 1, 3, 2}},
}
