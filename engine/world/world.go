// Package world assembles the scene: the rotating moon, the satellite with its solar cells and body, the
// wireframe red stars, the shooting-star pool and the lights. It also maps configuration changes onto the
// materials and lights it built.
package world

import (
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/assets"
	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/geometry"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/instance"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-moon/engine/scene"
	"github.com/Carmen-Shannon/oxy-moon/engine/starfield"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture set names used in the assets Library.
const (
	SetMoon       = "moon"
	SetSolarCells = "solar_cells"
	SetBody       = "body"
)

// world is the implementation of the World interface.
type world struct {
	scene scene.Scene
	pool  starfield.StarPool
	rng   *rand.Rand

	moon       *scene.Node
	satellite  *scene.Node
	solarCells *scene.Node
	body       *scene.Node
	redStars   *scene.Node
	stars      *scene.Node
	sun        *scene.Node
	ambient    *scene.Node

	rotationPeriodMs float64
}

// World is the assembled, frozen scene plus the handles the engine animates and reconfigures.
type World interface {
	// Scene returns the frozen scene.
	Scene() scene.Scene

	// Pool returns the shooting-star pool.
	Pool() starfield.StarPool

	// Node returns a named part of the world ("moon", "satellite", "solar-cells", "body", "red-stars",
	// "stars", "sun", "ambient"), or nil.
	//
	// Parameters:
	//   - name: the node name
	//
	// Returns:
	//   - *scene.Node: the node, or nil
	Node(name string) *scene.Node

	// Animate advances the time-driven transforms (moon rotation) and recomputes world matrices.
	//
	// Parameters:
	//   - nowMs: the frame timestamp in milliseconds
	Animate(nowMs float64)

	// Apply pushes material, light and animation parameters from c onto the scene. Pool size, red star count
	// and spread, and texture directories are only read at Build.
	//
	// Parameters:
	//   - c: the configuration snapshot
	Apply(c config.Config)
}

var _ World = &world{}

// TextureSets returns the texture sets the world's materials use, with the directories from c.
//
// Parameters:
//   - c: the configuration
//
// Returns:
//   - []assets.TextureSet: the moon, solar cell and body sets
func TextureSets(c config.Config) []assets.TextureSet {
	moon := assets.TextureSet{
		Name: SetMoon,
		Dir:  c.Moon.TextureDir,
		Files: map[common.TextureSlot]string{
			common.TextureSlotAlbedo:    "Moon_002_basecolor.png",
			common.TextureSlotAO:        "Moon_002_ambientOcclusion.png",
			common.TextureSlotHeight:    "Moon_002_height.png",
			common.TextureSlotNormal:    "Moon_002_normal.png",
			common.TextureSlotRoughness: "Moon_002_roughness.png",
		},
	}

	solar := assets.PatternSet(SetSolarCells, c.Satellite.SolarCellDir, "SolarCells_512_%s.png",
		common.TextureSlotAlbedo, common.TextureSlotMetallic)
	solar.Repeat = [2]float32{3, 0.6}
	solar.Sampler = &common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeClampToEdge,
	}

	body := assets.PatternSet(SetBody, c.Satellite.BodyDir, "Scifi_Panel_512_%s.png",
		common.TextureSlotAlbedo, common.TextureSlotAO, common.TextureSlotHeight,
		common.TextureSlotNormal, common.TextureSlotMetallic, common.TextureSlotRoughness)
	body.Repeat = [2]float32{0.6, 0.7}

	return []assets.TextureSet{moon, solar, body}
}

// SurfaceFromConfig converts a configured surface into material parameters.
//
// Parameters:
//   - s: the configured surface
//
// Returns:
//   - material.Surface: the material parameters
func SurfaceFromConfig(s config.Surface) material.Surface {
	return material.Surface{
		Metallic:          s.Metalness,
		Roughness:         s.Roughness,
		AOIntensity:       s.AOIntensity,
		NormalScale:       s.NormalScale,
		DisplacementScale: s.DisplacementScale,
	}
}

// Build assembles and freezes the scene described by c, binding textures from lib. A nil lib builds untextured
// materials.
//
// Parameters:
//   - c: the configuration
//   - lib: the loaded textures
//   - options: functional options
//
// Returns:
//   - World: the assembled world
//   - error: an error if the scene fails to freeze
func Build(c config.Config, lib assets.Library, options ...WorldBuilderOption) (World, error) {
	w := &world{rotationPeriodMs: c.Moon.RotationPeriodMs}
	for _, opt := range options {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w.scene = scene.NewScene("moon")
	w.ambient = lightNode("ambient", scene.LightAmbient, c.Lighting.AmbientIntensity)
	w.moon = w.buildMoon(c, lib)
	w.satellite = w.buildSatellite(c, lib)
	w.stars = w.buildStars(c)
	w.scene.Add(w.ambient, w.moon, w.satellite, w.stars)
	if c.RedStars.Count > 0 {
		w.redStars = w.buildRedStars(c)
		w.scene.Add(w.redStars)
	}

	if err := w.scene.Freeze(); err != nil {
		return nil, err
	}
	return w, nil
}

func lightNode(name string, kind scene.LightKind, intensity float32) *scene.Node {
	n := scene.NewNode(name, scene.TagLight)
	n.Light = &scene.Light{Kind: kind, Color: [3]float32{1, 1, 1}, Intensity: intensity}
	return n
}

func (w *world) buildMoon(c config.Config, lib assets.Library) *scene.Node {
	n := scene.NewNode("moon", scene.TagRenderable, scene.TagNoBloom)
	n.Mesh = geometry.Torus(10, 3, 16, 100)
	n.Material = material.NewMaterial(
		material.WithName("moon"),
		material.WithSurface(SurfaceFromConfig(c.Moon.Surface)),
		material.WithTextures(lib.Textures(SetMoon)),
	)
	return n
}

func (w *world) buildSatellite(c config.Config, lib assets.Library) *scene.Node {
	group := scene.NewNode("satellite")
	group.Position = math32.Vec3(3, 0, 12)
	group.Scale = math32.Vec3(0.6, 0.6, 0.6)

	w.solarCells = scene.NewNode("solar-cells", scene.TagRenderable, scene.TagNoBloom)
	w.solarCells.Mesh = geometry.Plane(3, 0.5, 16, 4)
	w.solarCells.Material = material.NewMaterial(
		material.WithName("solar-cells"),
		material.WithSurface(SurfaceFromConfig(c.Satellite.SolarCells)),
		material.WithTextures(lib.Textures(SetSolarCells)),
		material.WithDoubleSided(true),
	)

	w.body = scene.NewNode("body", scene.TagRenderable, scene.TagNoBloom)
	w.body.Position = math32.Vec3(0, 0, -0.3)
	w.body.Mesh = geometry.Box(0.7, 0.6, 0.5, 16)
	w.body.Material = material.NewMaterial(
		material.WithName("body"),
		material.WithSurface(SurfaceFromConfig(c.Satellite.Body)),
		material.WithTextures(lib.Textures(SetBody)),
	)

	w.sun = lightNode("sun", scene.LightPoint, c.Lighting.SunIntensity)
	w.sun.Position = math32.Vec3(20, 5, 30)

	return group.Add(w.solarCells, w.body, w.sun)
}

func (w *world) buildRedStars(c config.Config) *scene.Node {
	half := c.RedStars.Spread / 2
	transforms := make([]instance.Transform, c.RedStars.Count)
	for i := range transforms {
		t := instance.IdentityTransform()
		t.Position = math32.Vec3(
			(w.rng.Float32()*2-1)*half,
			(w.rng.Float32()*2-1)*half,
			(w.rng.Float32()*2-1)*half,
		)
		transforms[i] = t
	}

	n := scene.NewNode("red-stars", scene.TagRenderable, scene.TagBloom, scene.TagInstanced)
	n.Mesh = geometry.ExtrudedStar(5, 0.05, 0.1, 0.005)
	n.Mesh.Name = "red-star"
	n.Instances = instance.NewInstanceBuffer(len(transforms), instance.WithLabel("red-stars"), instance.WithTransforms(transforms...))
	n.Material = material.NewMaterial(
		material.WithName("red-stars"),
		material.WithEmissive([3]float32{1, 0, 0}, c.RedStars.EmissiveIntensity),
		material.WithMetallic(c.RedStars.Metalness),
		material.WithRoughness(c.RedStars.Roughness),
		material.WithWireframe(true),
	)
	return n
}

func (w *world) buildStars(c config.Config) *scene.Node {
	w.pool = starfield.NewStarPool(c.Stars.Count,
		starfield.WithRadius(c.Stars.Radius),
		starfield.WithJitter(c.Stars.Jitter),
		starfield.WithStarScale(c.Stars.Scale),
		starfield.WithPoolRand(w.rng),
		starfield.WithPoolLabel("shooting-stars"),
	)

	n := scene.NewNode("stars", scene.TagRenderable, scene.TagBloom, scene.TagInstanced)
	n.Mesh = geometry.ExtrudedStar(5, 0.05, 0.1, 0.005)
	n.Mesh.Name = "shooting-star"
	n.Instances = w.pool.Buffer()
	n.Material = material.NewMaterial(
		material.WithName("shooting-stars"),
		material.WithEmissive([3]float32{1, 1, 1}, c.Stars.EmissiveIntensity),
		material.WithDoubleSided(true),
	)
	return n
}

func (w *world) Scene() scene.Scene {
	return w.scene
}

func (w *world) Pool() starfield.StarPool {
	return w.pool
}

func (w *world) Node(name string) *scene.Node {
	switch name {
	case "moon":
		return w.moon
	case "satellite":
		return w.satellite
	case "solar-cells":
		return w.solarCells
	case "body":
		return w.body
	case "red-stars":
		return w.redStars
	case "stars":
		return w.stars
	case "sun":
		return w.sun
	case "ambient":
		return w.ambient
	}
	return nil
}

func (w *world) Animate(nowMs float64) {
	w.moon.Rotation.Y = float32(nowMs / w.rotationPeriodMs)
	w.scene.UpdateWorld()
}

func (w *world) Apply(c config.Config) {
	w.moon.Material.SetSurface(SurfaceFromConfig(c.Moon.Surface))
	w.solarCells.Material.SetSurface(SurfaceFromConfig(c.Satellite.SolarCells))
	w.body.Material.SetSurface(SurfaceFromConfig(c.Satellite.Body))
	w.stars.Material.SetEmissiveIntensity(c.Stars.EmissiveIntensity)
	if w.redStars != nil {
		red := w.redStars.Material
		red.SetSurface(material.Surface{
			Metallic:          c.RedStars.Metalness,
			Roughness:         c.RedStars.Roughness,
			AOIntensity:       red.AOIntensity(),
			NormalScale:       red.NormalScale(),
			DisplacementScale: red.DisplacementScale(),
		})
		red.SetEmissiveIntensity(c.RedStars.EmissiveIntensity)
	}
	w.ambient.Light.Intensity = c.Lighting.AmbientIntensity
	w.sun.Light.Intensity = c.Lighting.SunIntensity
	w.rotationPeriodMs = c.Moon.RotationPeriodMs
}
