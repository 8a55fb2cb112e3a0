package dataset

import (
	"bytes"
	"encoding/json"
	"sort"
)

// TypeDistribution counts records per equipment type, preserving
// first-seen order so repeated aggregation of the same input marshals
// to the same JSON object.
type TypeDistribution struct {
	keys   []string
	counts map[string]int
}

// NewTypeDistribution constructs an empty distribution.
func NewTypeDistribution() TypeDistribution {
	return TypeDistribution{counts: make(map[string]int)}
}

// Add increments the count for an equipment type.
func (d *TypeDistribution) Add(equipmentType string) {
	if d.counts == nil {
		d.counts = make(map[string]int)
	}
	if _, seen := d.counts[equipmentType]; !seen {
		d.keys = append(d.keys, equipmentType)
	}
	d.counts[equipmentType]++
}

// Set assigns an explicit count, appending the type if unseen.
func (d *TypeDistribution) Set(equipmentType string, count int) {
	if d.counts == nil {
		d.counts = make(map[string]int)
	}
	if _, seen := d.counts[equipmentType]; !seen {
		d.keys = append(d.keys, equipmentType)
	}
	d.counts[equipmentType] = count
}

// Count returns the count for an equipment type (0 when absent).
func (d TypeDistribution) Count(equipmentType string) int {
	return d.counts[equipmentType]
}

// Types returns the distinct types in first-seen order.
func (d TypeDistribution) Types() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of distinct types.
func (d TypeDistribution) Len() int {
	return len(d.keys)
}

// Sum returns the total of all counts.
func (d TypeDistribution) Sum() int {
	total := 0
	for _, count := range d.counts {
		total += count
	}
	return total
}

// Clone returns an independent copy.
func (d TypeDistribution) Clone() TypeDistribution {
	out := NewTypeDistribution()
	for _, key := range d.keys {
		out.Set(key, d.counts[key])
	}
	return out
}

// MarshalJSON emits a JSON object with keys in first-seen order.
func (d TypeDistribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		count, err := json.Marshal(d.counts[key])
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a distribution from a JSON object. Key order
// inside a JSON object is not recoverable, so keys are sorted for a
// stable result.
func (d *TypeDistribution) UnmarshalJSON(data []byte) error {
	raw := map[string]int{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	*d = NewTypeDistribution()
	for _, key := range keys {
		d.Set(key, raw[key])
	}
	return nil
}
