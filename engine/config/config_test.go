package config

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, float32(1.0), c.Bloom.Threshold)
	assert.Equal(t, float32(0.2), c.Bloom.Strength)
	assert.Equal(t, float32(0), c.Bloom.Radius)
	assert.Equal(t, float32(0.8), c.Afterimage.Damp)
	assert.Equal(t, 2000.0, c.ShootingStar.IntervalMs)
	assert.Equal(t, 700.0, c.ShootingStar.DurationMs)
	assert.Equal(t, float32(6), c.ShootingStar.Distance)
	assert.Equal(t, 70, c.Stars.Count)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	c := Default()
	c.Afterimage.Damp = 1.5
	c.Bloom.Threshold = -1
	c.Stars.Count = 0
	c.Output.ToneMapping = "filmic"

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
	msg := err.Error()
	assert.Contains(t, msg, "afterimage.damp")
	assert.Contains(t, msg, "bloom.threshold")
	assert.Contains(t, msg, "stars.count")
	assert.Contains(t, msg, "output.tone_mapping")
}

func TestValidateNestedPath(t *testing.T) {
	c := Default()
	c.Satellite.Body.Metalness = 3

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "satellite.body.metalness")
}

func TestStoreSetRejectsInvalid(t *testing.T) {
	s, err := NewStore(Default())
	require.NoError(t, err)

	bad := Default()
	bad.Bloom.Strength = 100
	err = s.Set(bad)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, float32(0.2), s.Get().Bloom.Strength)
}

func TestStoreSetNotifiesListeners(t *testing.T) {
	s, err := NewStore(Default())
	require.NoError(t, err)

	var calls atomic.Int32
	s.OnChange(func(prev, next Config) {
		calls.Add(1)
		assert.Equal(t, float32(0.8), prev.Afterimage.Damp)
		assert.Equal(t, float32(0.5), next.Afterimage.Damp)
	})

	require.NoError(t, s.Update(func(c *Config) { c.Afterimage.Damp = 0.5 }))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, float32(0.5), s.Get().Afterimage.Damp)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s, err := NewStore(Default())
	require.NoError(t, err)

	c := s.Get()
	c.Bloom.Threshold = 5
	assert.Equal(t, float32(1.0), s.Get().Bloom.Threshold)
}

func TestStoreUpdateKeepsConcurrentSet(t *testing.T) {
	s, err := NewStore(Default())
	require.NoError(t, err)

	reloaded := Default()
	reloaded.Bloom.Strength = 2.5
	reloaded.Bloom.Enabled = false

	calls := 0
	require.NoError(t, s.Update(func(c *Config) {
		calls++
		if calls == 1 {
			require.NoError(t, s.Set(reloaded))
		}
		c.Bloom.Enabled = !c.Bloom.Enabled
	}))

	assert.Equal(t, 2, calls)
	assert.Equal(t, float32(2.5), s.Get().Bloom.Strength)
	assert.True(t, s.Get().Bloom.Enabled)
}

func TestStoreUpdateIsAtomic(t *testing.T) {
	s, err := NewStore(Default())
	require.NoError(t, err)

	const workers, rounds = 8, 50
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				assert.NoError(t, s.Update(func(c *Config) { c.RedStars.Count++ }))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, Default().RedStars.Count+workers*rounds, s.Get().RedStars.Count)
}

func TestStoreUpdateRejectsInvalid(t *testing.T) {
	s, err := NewStore(Default())
	require.NoError(t, err)

	var calls atomic.Int32
	s.OnChange(func(_, _ Config) { calls.Add(1) })

	err = s.Update(func(c *Config) { c.Bloom.Strength = 100 })
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, float32(0.2), s.Get().Bloom.Strength)
	assert.Zero(t, calls.Load())
}

func TestNewStoreRejectsInvalid(t *testing.T) {
	c := Default()
	c.ShootingStar.DurationMs = 0
	_, err := NewStore(c)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecodeTOMLOverlaysDefaults(t *testing.T) {
	doc := []byte(`
[bloom]
threshold = 0.5

[shooting_star]
interval_ms = 1000
`)
	c, err := Decode(doc, FormatTOML, Default())
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), c.Bloom.Threshold)
	assert.Equal(t, 1000.0, c.ShootingStar.IntervalMs)
	assert.Equal(t, float32(0.2), c.Bloom.Strength)
	assert.True(t, c.Bloom.Enabled)
}

func TestDecodeTOMLRejectsUnknownKeys(t *testing.T) {
	_, err := Decode([]byte("[bloom]\nglow = 1\n"), FormatTOML, Default())
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	doc := []byte("afterimage:\n  damp: 0.9\noutput:\n  tone_mapping: reinhard\n")
	c, err := Decode(doc, FormatYAML, Default())
	require.NoError(t, err)
	assert.Equal(t, float32(0.9), c.Afterimage.Damp)
	assert.Equal(t, ToneMappingReinhard, c.Output.ToneMapping)
}

func TestDecodeRejectsOutOfRange(t *testing.T) {
	_, err := Decode([]byte("afterimage:\n  damp: 2\n"), FormatYAML, Default())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("B.YML"))
	assert.Equal(t, FormatTOML, FormatFromPath("c.toml"))
	assert.Equal(t, FormatTOML, FormatFromPath("noext"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"moon.toml", "moon.yaml"} {
		path := filepath.Join(dir, name)
		want := Default()
		want.Stars.Count = 12
		want.Output.ToneMapping = ToneMappingNone
		require.NoError(t, Save(path, want))

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReloadPublishes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moon.toml")
	require.NoError(t, os.WriteFile(path, []byte("[afterimage]\ndamp = 0.3\n"), 0o644))

	s, err := NewStore(Default())
	require.NoError(t, err)
	w, err := Watch(path, s)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Reload())
	assert.Equal(t, float32(0.3), s.Get().Afterimage.Damp)

	require.NoError(t, os.WriteFile(path, []byte("[afterimage]\ndamp = 7\n"), 0o644))
	assert.Error(t, w.Reload())
	assert.Equal(t, float32(0.3), s.Get().Afterimage.Damp)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestToneMapping(t *testing.T) {
	assert.True(t, ToneMappingACES.Valid())
	assert.False(t, ToneMapping("filmic").Valid())
	assert.Equal(t, uint32(0), ToneMappingNone.Index())
	assert.Equal(t, uint32(1), ToneMappingReinhard.Index())
	assert.Equal(t, uint32(2), ToneMappingACES.Index())
}

func TestHexToLinear(t *testing.T) {
	assert.Equal(t, [3]float32{0, 0, 0}, HexToLinear(0))
	white := HexToLinear(0xffffff)
	for _, c := range white {
		assert.InDelta(t, 1, c, 1e-5)
	}
	bg := HexToLinear(0x033333)
	assert.InDelta(t, 0.000911, bg[0], 1e-5)
	assert.InDelta(t, 0.033105, bg[1], 1e-5)
	assert.Equal(t, bg[1], bg[2])
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "moon.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
