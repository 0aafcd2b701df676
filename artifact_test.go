package telecodec

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHex(t *testing.T) {
	assert.Equal(t, "DEAD01", ToHex([]byte{0xde, 0xad, 0x01}))
	assert.Equal(t, "", ToHex(nil))
}

func TestSaveArtifacts(t *testing.T) {
	dir := t.TempDir()
	rec := sampleRecord()
	raw, err := EncodeStruct(&rec, DefaultMaxPayload)
	require.NoError(t, err)

	binPath, hexPath, err := SaveArtifacts(dir, raw)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(binPath, ".bin"))
	assert.True(t, strings.HasSuffix(hexPath, ".hex"))

	gotRaw, err := os.ReadFile(binPath)
	require.NoError(t, err)
	assert.Equal(t, raw, gotRaw, "binary artifact is the payload verbatim")

	gotHex, err := os.ReadFile(hexPath)
	require.NoError(t, err)
	assert.Equal(t, ToHex(raw)+"\n", string(gotHex))

	// The hex rendering must decode back to the same payload downstream.
	decoded, err := DecodeStruct(raw)
	require.NoError(t, err)
	want, err := rec.Typed()
	require.NoError(t, err)
	assert.Equal(t, want, decoded)
}

func TestLoadConfig(t *testing.T) {
	path := t.TempDir() + "/codec.yml"
	require.NoError(t, os.WriteFile(path, []byte(
		"scheme: schema\npool_size: 500\nworkers: 2\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "schema", cfg.Scheme)
	assert.Equal(t, 500, cfg.PoolSize)
	assert.Equal(t, 2, cfg.Workers)
	// Unset keys fall back to defaults.
	assert.Equal(t, DefaultMaxPayload, cfg.MaxPayloadSize)
	assert.Equal(t, ".", cfg.OutDir)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("does/not/exist.yml")
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultMaxPayload, cfg.MaxPayloadSize)

	_, _, err := ParseScheme(cfg.Scheme)
	assert.NoError(t, err, "default scheme must be parseable")
}
