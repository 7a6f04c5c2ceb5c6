package schema

// Descriptor is the serializable form of a primitive action. Producers may
// nest parameters under "arguments" or place them at the top level; ingestion
// merges the two before dispatch.
type Descriptor struct {
	Kind      string         `json:"kind" yaml:"kind" mapstructure:"kind"`
	Arguments map[string]any `json:"arguments,omitempty" yaml:"arguments,omitempty" mapstructure:"arguments"`
	Extra     map[string]any `json:"-" yaml:",inline" mapstructure:",remain"`
}

// Fields returns the flattened argument map: Extra merged with Arguments,
// with Arguments winning on key collision. The kind field is not included.
func (d *Descriptor) Fields() map[string]any {
	merged := make(map[string]any, len(d.Extra)+len(d.Arguments))
	for k, v := range d.Extra {
		merged[k] = v
	}
	for k, v := range d.Arguments {
		merged[k] = v
	}
	return merged
}

// Point is an on-screen position produced by grounding resolution.
type Point struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Observation is the input to grounding resolution: a capture of the current
// UI state plus optional viewport metadata.
type Observation struct {
	Screenshot []byte         `json:"screenshot,omitempty"`
	Width      int            `json:"width,omitempty"`
	Height     int            `json:"height,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
