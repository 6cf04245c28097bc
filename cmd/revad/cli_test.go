package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/born-ml/revad/internal/serialization"
)

func TestLoadTrainConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: 3\nlr: 0.05\nseed: 7\n"), 0o600))

	cfg, err := LoadTrainConfig(path)
	require.NoError(t, err)

	want := DefaultTrainConfig()
	want.Rows = 3
	want.LR = 0.05
	want.Seed = 7
	assert.Equal(t, want, cfg)
}

func TestLoadTrainConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTrainConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rows: [1, 2\n"), 0o600))
	_, err = LoadTrainConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("rows: 0\nmomentum: 1.5\n"), 0o600))
	_, err = LoadTrainConfig(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows and cols")
	assert.Contains(t, err.Error(), "momentum")
}

func TestTrain(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Iterations = 3

	var out bytes.Buffer
	require.NoError(t, train(&out, cfg, zap.NewNop()))

	s := out.String()
	assert.Contains(t, s, "initial W\n[[0 0] [0 0]]")
	assert.Contains(t, s, "\n0 <var = ")
	assert.Contains(t, s, "\n2 <var = ")
	assert.NotContains(t, s, "\n3 <var = ")
	assert.Contains(t, s, "learned W")
	assert.Contains(t, s, "after 3 iterations")
}

func TestTrain_Deterministic(t *testing.T) {
	cfg := DefaultTrainConfig()

	var first, second bytes.Buffer
	require.NoError(t, train(&first, cfg, zap.NewNop()))
	require.NoError(t, train(&second, cfg, zap.NewNop()))
	assert.Equal(t, first.String(), second.String())
}

func TestTrain_SavesWeights(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Iterations = 2
	cfg.Output = filepath.Join(t.TempDir(), "w.safetensors")

	var out bytes.Buffer
	require.NoError(t, train(&out, cfg, zap.NewNop()))

	arrays, meta, err := serialization.LoadSafeTensors(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "2", meta["iterations"])
	assert.Equal(t, "0.01", meta["lr"])

	w := arrays["W"]
	require.NotNil(t, w)
	assert.Equal(t, []int{2, 2}, []int(w.Shape()))
	assert.Contains(t, out.String(), "learned W\n"+w.String())
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "revad "+version))
}
