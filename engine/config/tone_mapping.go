package config

// ToneMapping selects the operator the output stage applies after the additive bloom combine.
type ToneMapping string

const (
	// ToneMappingNone clamps the exposed color.
	ToneMappingNone ToneMapping = "none"
	// ToneMappingReinhard applies c / (1 + c).
	ToneMappingReinhard ToneMapping = "reinhard"
	// ToneMappingACES applies the Narkowicz ACES filmic fit.
	ToneMappingACES ToneMapping = "aces"
)

// Valid reports whether t is a known operator.
func (t ToneMapping) Valid() bool {
	switch t {
	case ToneMappingNone, ToneMappingReinhard, ToneMappingACES:
		return true
	}
	return false
}

// Index returns the operator id consumed by the combine shader.
func (t ToneMapping) Index() uint32 {
	switch t {
	case ToneMappingReinhard:
		return 1
	case ToneMappingACES:
		return 2
	}
	return 0
}
