package telemetry

// Label is a single name/value pair attached to metric samples.
type Label struct {
	Name  string
	Value string
}

// labelSet is an ordered label collection with last-write-wins semantics
// per name. A re-added name moves to the end of the order.
type labelSet struct {
	labels []Label
}

// add appends a label, removing any earlier label with the same name first.
func (s *labelSet) add(name, value string) {
	for i, l := range s.labels {
		if l.Name == name {
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			break
		}
	}
	s.labels = append(s.labels, Label{Name: name, Value: value})
}

// addAll applies add for every entry of the mapping.
func (s *labelSet) addAll(labels map[string]string) {
	for name, value := range labels {
		s.add(name, value)
	}
}

// update removes every existing label whose name appears in the mapping,
// then appends the mapping's entries. Labels not named in the mapping keep
// their position.
func (s *labelSet) update(labels map[string]string) {
	kept := s.labels[:0]
	for _, l := range s.labels {
		if _, ok := labels[l.Name]; !ok {
			kept = append(kept, l)
		}
	}
	s.labels = kept
	for name, value := range labels {
		s.labels = append(s.labels, Label{Name: name, Value: value})
	}
}

// reset removes all labels.
func (s *labelSet) reset() {
	s.labels = nil
}

// effective returns the current name to value view, one entry per name.
func (s *labelSet) effective() map[string]string {
	out := make(map[string]string, len(s.labels))
	for _, l := range s.labels {
		out[l.Name] = l.Value
	}
	return out
}

// snapshot returns an independent copy of the current labels. Samples hold
// snapshots so later label mutations never alter already-recorded samples.
func (s *labelSet) snapshot() []Label {
	if len(s.labels) == 0 {
		return nil
	}
	out := make([]Label, len(s.labels))
	copy(out, s.labels)
	return out
}
