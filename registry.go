package telemetry

import (
	"strconv"
	"strings"
)

// Sample is a single recorded counter value together with the label
// snapshot that was in effect when it was recorded. Immutable once created.
type Sample struct {
	Value  float64
	Labels []Label
}

// registry accumulates samples per metric name in insertion order. Each Add
// for an already-seen name appends a new sample to that name's collection,
// so a repeated name serializes as multiple labeled lines rather than one
// running total.
type registry struct {
	order       []string
	collections map[string][]Sample
}

func newRegistry() *registry {
	return &registry{
		collections: make(map[string][]Sample),
	}
}

// add records a sample for the named metric.
func (r *registry) add(name string, value float64, labels []Label) {
	if _, ok := r.collections[name]; !ok {
		r.order = append(r.order, name)
	}
	r.collections[name] = append(r.collections[name], Sample{Value: value, Labels: labels})
}

// collection groups the drained samples of one metric name.
type collection struct {
	name    string
	samples []Sample
}

// drain removes and returns every collection in insertion order. The
// registry is left empty regardless of what the caller does with the
// result; a failed delivery does not retain samples.
func (r *registry) drain() []collection {
	out := make([]collection, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, collection{name: name, samples: r.collections[name]})
		delete(r.collections, name)
	}
	r.order = nil
	return out
}

// renderExposition serializes collections into the Prometheus text
// exposition format, one line per sample:
//
//	metric_name{label1="value1",label2="value2"} value
func renderExposition(collections []collection) string {
	var b strings.Builder
	for _, col := range collections {
		for _, s := range col.samples {
			b.WriteString(col.name)
			if len(s.Labels) > 0 {
				b.WriteByte('{')
				for i, l := range s.Labels {
					if i > 0 {
						b.WriteByte(',')
					}
					b.WriteString(l.Name)
					b.WriteString(`="`)
					b.WriteString(escapeLabelValue(l.Value))
					b.WriteByte('"')
				}
				b.WriteByte('}')
			}
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(s.Value, 'g', -1, 64))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var labelValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabelValue(v string) string {
	return labelValueEscaper.Replace(v)
}
