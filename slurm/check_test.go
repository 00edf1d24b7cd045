package slurm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "fedsweep.io/core"
)

func TestDecodeMemReq(t *testing.T) {
	tests := []struct {
		req  string
		want int
	}{
		{"16G", 16},
		{"1T", 1024},
		{"2048", 2},
		{"1500M", 2},
		{"1024K", 1},
	}
	for _, tt := range tests {
		mem, err := decodeMemReq(tt.req)
		require.NoError(t, err, tt.req)
		assert.Equal(t, tt.want, mem, tt.req)
	}
	for _, req := range []string{"", "G", "16GB", "-1G"} {
		_, err := decodeMemReq(req)
		assert.Error(t, err, req)
	}
}

func TestDecodeGpusReq(t *testing.T) {
	tests := []struct {
		req  string
		want int
	}{
		{"gpu", 1},
		{"gpu:2", 2},
		{"gpu:v100:4", 4},
		{"gpu:a100", 1},
		{"mps:100,gpu:1", 1},
	}
	for _, tt := range tests {
		gpus, err := decodeGpusReq(tt.req)
		require.NoError(t, err, tt.req)
		assert.Equal(t, tt.want, gpus, tt.req)
	}
	_, err := decodeGpusReq("gpu:v100:x:1")
	assert.Error(t, err)
}

func TestCheckRenderedJobScript(t *testing.T) {
	config := core.DefaultLaunchConfig()
	config.Directives.Partition = "gpu"
	script, err := core.RenderJobScript(config.JobSpec(400), config.Directives, config.Environment)
	require.NoError(t, err)

	report, err := CheckJobScriptBytes(script)
	require.NoError(t, err)
	assert.Empty(t, report.Unsupported)
	assert.Equal(t, map[string]interface{}{
		"job-name":  "fl_F400_N3",
		"mem":       "16G",
		"time":      "24:00:00",
		"gres":      "gpu:1",
		"partition": "gpu",
		"mail-type": "END,FAIL",
	}, report.Options)
}

func TestCheckJobScriptShortOptions(t *testing.T) {
	report, err := CheckJobScript(core.JobScript{
		Args: []string{"-J", "lofar", "-N", "16", "-t", "08:00:00", "--exclusive"},
	})
	require.NoError(t, err)
	assert.Equal(t, "lofar", report.Options["job-name"])
	assert.Equal(t, 16, report.Options["nodes"])
	assert.Equal(t, true, report.Options["exclusive"])
	assert.Equal(t, []string{"exclusive", "nodes"}, report.Unsupported)
}

func TestCheckJobScriptErrors(t *testing.T) {
	tests := map[string][]string{
		"unknown option": {"--no-such-option=1"},
		"bad int":        {"--nodes=many"},
		"bad mem":        {"--mem=lots"},
		"bad time":       {"--time=tomorrow"},
		"bad gres":       {"--gres=gpu:a:b:c"},
		"stray argument": {"--mem=1G", "extra"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := CheckJobScript(core.JobScript{Args: args})
			assert.Error(t, err)
		})
	}
}

func TestCheckJobScriptFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "job.sbatch")
	require.NoError(t, os.WriteFile(filename, []byte("#!/bin/bash\n#SBATCH --job-name=x\n#SBATCH --mem=1G\nhostname\n"), 0644))

	report, err := CheckJobScriptFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "1G", report.Options["mem"])

	_, err = CheckJobScriptFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
