package host

// ParamType names an automation parameter.
type ParamType string

const (
	ParamPitchDelta  ParamType = "pitchDelta"
	ParamVibratoEnv  ParamType = "vibratoEnv"
	ParamLoudness    ParamType = "loudness"
	ParamTension     ParamType = "tension"
	ParamBreathiness ParamType = "breathiness"
	ParamVoicing     ParamType = "voicing"
	ParamGender      ParamType = "gender"
)

// ParamTypes lists every parameter in host display order.
var ParamTypes = []ParamType{
	ParamPitchDelta,
	ParamVibratoEnv,
	ParamLoudness,
	ParamTension,
	ParamBreathiness,
	ParamVoicing,
	ParamGender,
}

// DefaultValue returns the value a curve of this type reports where it has
// no control points.
func (p ParamType) DefaultValue() float64 {
	switch p {
	case ParamVibratoEnv, ParamVoicing:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of ParamTypes.
func (p ParamType) Valid() bool {
	for _, t := range ParamTypes {
		if t == p {
			return true
		}
	}
	return false
}
