// Package config holds the typed, range-constrained parameters read by the engine at tick time.
//
// Every numeric field carries `min` and `max` struct tags. Validate enforces them, so a Config that reached a
// Store is always in range. The core never cares how a value changed (file edit, command-line flag, key press);
// it only reads the current snapshot once per tick.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrOutOfRange is returned (wrapped) by Validate when a field violates its min/max tags.
var ErrOutOfRange = errors.New("config value out of range")

// Bloom configures the bright-pass extraction and glow spread.
type Bloom struct {
	// Enabled turns the bloom pass on. When off the final pass composites an empty bloom texture.
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Threshold is the luminance above which a pixel contributes to the glow.
	Threshold float32 `toml:"threshold" yaml:"threshold" min:"0" max:"10"`
	// Strength scales the blurred glow before it is accumulated.
	Strength float32 `toml:"strength" yaml:"strength" min:"0" max:"3"`
	// Radius widens the blur kernel. 0 keeps the tightest kernel.
	Radius float32 `toml:"radius" yaml:"radius" min:"0" max:"1"`
}

// Afterimage configures the temporal decay applied to the bloom target.
type Afterimage struct {
	// Damp is the weight of the previous frame: out = damp*previous + (1-damp)*current.
	Damp float32 `toml:"damp" yaml:"damp" min:"0" max:"1"`
}

// Output configures the final presentation stage.
type Output struct {
	// Exposure multiplies the composited color before tone mapping.
	Exposure float32 `toml:"exposure" yaml:"exposure" min:"0" max:"8"`
	// ToneMapping selects the operator applied after the additive combine.
	ToneMapping ToneMapping `toml:"tone_mapping" yaml:"tone_mapping"`
	// Background is the clear color as 0xRRGGBB.
	Background uint32 `toml:"background" yaml:"background" min:"0" max:"16777215"`
}

// ShootingStar configures the shooting-star scheduler.
type ShootingStar struct {
	// IntervalMs is the minimum gap between two clip starts.
	IntervalMs float64 `toml:"interval_ms" yaml:"interval_ms" min:"1" max:"600000"`
	// DurationMs is how long one clip interpolates.
	DurationMs float64 `toml:"duration_ms" yaml:"duration_ms" min:"1" max:"600000"`
	// Distance is the length of the random destination offset.
	Distance float32 `toml:"distance" yaml:"distance" min:"0" max:"1000"`
	// RollSpeed is the roll rate of an animated star in radians per second.
	RollSpeed float32 `toml:"roll_speed" yaml:"roll_speed" min:"0" max:"100"`
}

// Stars configures the instanced shooting-star pool.
type Stars struct {
	// Count is the pool size. Only read at Init.
	Count int `toml:"count" yaml:"count" min:"1" max:"100000"`
	// Radius is the radius of the sphere the rest positions are placed on.
	Radius float32 `toml:"radius" yaml:"radius" min:"0" max:"10000"`
	// Jitter displaces rest positions radially by up to this distance.
	Jitter float32 `toml:"jitter" yaml:"jitter" min:"0" max:"1000"`
	// Scale is the uniform scale of a star instance.
	Scale float32 `toml:"scale" yaml:"scale" min:"0" max:"100"`
	// EmissiveIntensity multiplies the white emissive color of the pool material.
	EmissiveIntensity float32 `toml:"emissive_intensity" yaml:"emissive_intensity" min:"0" max:"100"`
}

// RedStars configures the static field of wireframe red stars.
type RedStars struct {
	Count             int     `toml:"count" yaml:"count" min:"0" max:"100000"`
	Spread            float32 `toml:"spread" yaml:"spread" min:"0" max:"10000"`
	EmissiveIntensity float32 `toml:"emissive_intensity" yaml:"emissive_intensity" min:"0" max:"100"`
	Roughness         float32 `toml:"roughness" yaml:"roughness" min:"0" max:"1"`
	Metalness         float32 `toml:"metalness" yaml:"metalness" min:"0" max:"1"`
}

// Surface configures the tunable parameters of a textured material.
type Surface struct {
	Metalness   float32 `toml:"metalness" yaml:"metalness" min:"0" max:"2"`
	Roughness   float32 `toml:"roughness" yaml:"roughness" min:"0" max:"2"`
	AOIntensity float32 `toml:"ao_intensity" yaml:"ao_intensity" min:"0" max:"2"`
	NormalScale float32 `toml:"normal_scale" yaml:"normal_scale" min:"0" max:"2"`
	// DisplacementScale pushes vertices along their normal by the height map value.
	DisplacementScale float32 `toml:"displacement_scale" yaml:"displacement_scale" min:"0" max:"10"`
}

// Moon configures the moon mesh.
type Moon struct {
	Surface Surface `toml:"surface" yaml:"surface"`
	// RotationPeriodMs is the divisor applied to the timestamp for the Y rotation (rotation.y = t / period).
	RotationPeriodMs float64 `toml:"rotation_period_ms" yaml:"rotation_period_ms" min:"1" max:"1e9"`
	// TextureDir holds the moon texture set.
	TextureDir string `toml:"texture_dir" yaml:"texture_dir"`
}

// Satellite configures the satellite group.
type Satellite struct {
	SolarCells Surface `toml:"solar_cells" yaml:"solar_cells"`
	Body       Surface `toml:"body" yaml:"body"`
	// SolarCellDir and BodyDir hold the texture sets.
	SolarCellDir string `toml:"solar_cell_dir" yaml:"solar_cell_dir"`
	BodyDir      string `toml:"body_dir" yaml:"body_dir"`
}

// Lighting configures the scene lights.
type Lighting struct {
	AmbientIntensity float32 `toml:"ambient_intensity" yaml:"ambient_intensity" min:"0" max:"20"`
	SunIntensity     float32 `toml:"sun_intensity" yaml:"sun_intensity" min:"0" max:"100"`
}

// Assets configures texture loading.
type Assets struct {
	// MaxTextureSize down-scales larger textures at load time. 0 disables resizing.
	MaxTextureSize int `toml:"max_texture_size" yaml:"max_texture_size" min:"0" max:"16384"`
	// Workers is the decode worker count. 0 selects NumCPU-1.
	Workers int `toml:"workers" yaml:"workers" min:"0" max:"256"`
}

// Config is the complete set of runtime parameters.
type Config struct {
	Bloom        Bloom        `toml:"bloom" yaml:"bloom"`
	Afterimage   Afterimage   `toml:"afterimage" yaml:"afterimage"`
	Output       Output       `toml:"output" yaml:"output"`
	ShootingStar ShootingStar `toml:"shooting_star" yaml:"shooting_star"`
	Stars        Stars        `toml:"stars" yaml:"stars"`
	RedStars     RedStars     `toml:"red_stars" yaml:"red_stars"`
	Moon         Moon         `toml:"moon" yaml:"moon"`
	Satellite    Satellite    `toml:"satellite" yaml:"satellite"`
	Lighting     Lighting     `toml:"lighting" yaml:"lighting"`
	Assets       Assets       `toml:"assets" yaml:"assets"`
}

// Default returns the stock scene configuration.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Bloom: Bloom{
			Enabled:   true,
			Threshold: 1.0,
			Strength:  0.2,
			Radius:    0,
		},
		Afterimage: Afterimage{Damp: 0.8},
		Output: Output{
			Exposure:    1.0,
			ToneMapping: ToneMappingACES,
			Background:  0x033333,
		},
		ShootingStar: ShootingStar{
			IntervalMs: 2000,
			DurationMs: 700,
			Distance:   6,
			RollSpeed:  4,
		},
		Stars: Stars{
			Count:             70,
			Radius:            40,
			Jitter:            2,
			Scale:             4,
			EmissiveIntensity: 6,
		},
		RedStars: RedStars{
			Count:             80,
			Spread:            20,
			EmissiveIntensity: 6,
			Roughness:         1,
			Metalness:         0,
		},
		Moon: Moon{
			Surface:          Surface{Metalness: 0, Roughness: 1, AOIntensity: 1, NormalScale: 1, DisplacementScale: 1},
			RotationPeriodMs: 3000,
			TextureDir:       "assets/Moon_002_SD",
		},
		Satellite: Satellite{
			SolarCells:   Surface{Metalness: 0.865, Roughness: 0.21, AOIntensity: 1, NormalScale: 1},
			Body:         Surface{Metalness: 1.25, Roughness: 0.5, AOIntensity: 1.25, NormalScale: 0.5, DisplacementScale: 0.0001},
			SolarCellDir: "assets/solar_cells/small",
			BodyDir:      "assets/scifi_panel/small",
		},
		Lighting: Lighting{
			AmbientIntensity: 2,
			SunIntensity:     3,
		},
		Assets: Assets{
			MaxTextureSize: 1024,
			Workers:        0,
		},
	}
}

// Validate checks every numeric field against its min/max tags and every enum against its known values.
// All violations are reported, joined.
//
// Returns:
//   - error: nil when valid, otherwise an error wrapping ErrOutOfRange
func (c Config) Validate() error {
	var errs []error
	validateStruct(reflect.ValueOf(c), "", &errs)
	if !c.Output.ToneMapping.Valid() {
		errs = append(errs, fmt.Errorf("%w: output.tone_mapping %q is unknown", ErrOutOfRange, c.Output.ToneMapping))
	}
	return errors.Join(errs...)
}

// validateStruct walks v recursively, checking numeric fields that carry min/max tags.
func validateStruct(v reflect.Value, prefix string, errs *[]error) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		name := f.Tag.Get("toml")
		if name == "" {
			name = f.Name
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		if fv.Kind() == reflect.Struct {
			validateStruct(fv, path, errs)
			continue
		}

		var val float64
		switch fv.Kind() {
		case reflect.Float32, reflect.Float64:
			val = fv.Float()
		case reflect.Int, reflect.Int32, reflect.Int64:
			val = float64(fv.Int())
		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			val = float64(fv.Uint())
		default:
			continue
		}

		if lo, ok := tagFloat(f, "min"); ok && val < lo {
			*errs = append(*errs, fmt.Errorf("%w: %s = %v below min %v", ErrOutOfRange, path, val, lo))
		}
		if hi, ok := tagFloat(f, "max"); ok && val > hi {
			*errs = append(*errs, fmt.Errorf("%w: %s = %v above max %v", ErrOutOfRange, path, val, hi))
		}
	}
}

func tagFloat(f reflect.StructField, key string) (float64, bool) {
	s, ok := f.Tag.Lookup(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
