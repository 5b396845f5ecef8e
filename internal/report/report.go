// Package report describes the placement and handoff state of the
// descriptor arenas in a form that can be printed or serialized.
package report

import (
	"fmt"

	"github.com/ardnew/ehciarena/device/hal/ehci/ral"
	"github.com/ardnew/ehciarena/device/hal/ehci/state"
)

// Arena describes one descriptor arena.
type Arena struct {
	Base      string `json:"base" yaml:"base" toml:"base"`
	End       string `json:"end" yaml:"end" toml:"end"`
	Size      int    `json:"size" yaml:"size" toml:"size"`
	Align     int    `json:"align" yaml:"align" toml:"align"`
	Aligned   bool   `json:"aligned" yaml:"aligned" toml:"aligned"`
	Slots     int    `json:"slots" yaml:"slots" toml:"slots"`
	Available int    `json:"available" yaml:"available" toml:"available"`
}

// Instance describes the State of one controller instance.
type Instance struct {
	Name                string `json:"name" yaml:"name" toml:"name"`
	Phase               string `json:"phase" yaml:"phase" toml:"phase"`
	EndpointListAddr    string `json:"endptlistaddr,omitempty" yaml:"endptlistaddr,omitempty" toml:"endptlistaddr,omitempty"`
	QueueHeads          Arena  `json:"queue_heads" yaml:"queue_heads" toml:"queue_heads"`
	TransferDescriptors Arena  `json:"transfer_descriptors" yaml:"transfer_descriptors" toml:"transfer_descriptors"`
}

// Steal records the outcome of one steal pass on an instance.
type Steal struct {
	Instance            string `json:"instance" yaml:"instance" toml:"instance"`
	Pass                int    `json:"pass" yaml:"pass" toml:"pass"`
	QueueHeads          int    `json:"queue_heads" yaml:"queue_heads" toml:"queue_heads"`
	TransferDescriptors int    `json:"transfer_descriptors" yaml:"transfer_descriptors" toml:"transfer_descriptors"`
}

// Write is a register write observed on the simulated bus.
type Write struct {
	Instance string `json:"instance" yaml:"instance" toml:"instance"`
	Register string `json:"register" yaml:"register" toml:"register"`
	Value    string `json:"value" yaml:"value" toml:"value"`
}

// Report is the full description of a Context.
type Report struct {
	Instances []Instance `json:"instances" yaml:"instances" toml:"instances"`
	Disjoint  bool       `json:"disjoint" yaml:"disjoint" toml:"disjoint"`
	Steals    []Steal    `json:"steals,omitempty" yaml:"steals,omitempty" toml:"steals,omitempty"`
	Writes    []Write    `json:"writes,omitempty" yaml:"writes,omitempty" toml:"writes,omitempty"`
}

// Layout describes every instance of c. If bus is non-nil, the last
// ENDPTLISTADDR value written to each instance is included.
func Layout(c *state.Context, bus *ral.Memory) *Report {
	r := &Report{Disjoint: true}

	var spans []state.Span
	for _, inst := range ral.Instances() {
		s := c.State(inst)
		qa, ta := s.Available()

		in := Instance{
			Name:                inst.String(),
			Phase:               s.Phase().String(),
			QueueHeads:          arena(s.QueueHeadSpan(), state.QueueHeadAlign, qa),
			TransferDescriptors: arena(s.TransferDescriptorSpan(), state.TransferDescriptorAlign, ta),
		}
		if bus != nil {
			if v, ok := bus.Last(inst, ral.ENDPTLISTADDR); ok {
				in.EndpointListAddr = hex32(v)
			}
		}
		r.Instances = append(r.Instances, in)
		spans = append(spans, s.QueueHeadSpan(), s.TransferDescriptorSpan())
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].Overlaps(spans[j]) {
				r.Disjoint = false
			}
		}
	}
	return r
}

// AddSteal appends the result of a steal pass.
func (r *Report) AddSteal(inst ral.Instance, pass int, qhs *state.QueueHeads, tds *state.TransferDescriptors) {
	r.Steals = append(r.Steals, Steal{
		Instance:            inst.String(),
		Pass:                pass,
		QueueHeads:          qhs.Present(),
		TransferDescriptors: tds.Present(),
	})
}

// AddWrites appends the write journal of bus.
func (r *Report) AddWrites(bus *ral.Memory) {
	for _, w := range bus.Writes() {
		r.Writes = append(r.Writes, Write{
			Instance: w.Instance.String(),
			Register: w.Register.String(),
			Value:    hex32(w.Value),
		})
	}
}

func arena(span state.Span, align, available int) Arena {
	return Arena{
		Base:      fmt.Sprintf("%#x", span.Lo),
		End:       fmt.Sprintf("%#x", span.Hi),
		Size:      int(span.Hi - span.Lo),
		Align:     align,
		Aligned:   span.Lo%uintptr(align) == 0,
		Slots:     state.SlotCount,
		Available: available,
	}
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}
