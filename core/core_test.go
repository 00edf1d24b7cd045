package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobSpecNames(t *testing.T) {
	job := DefaultLaunchConfig().JobSpec(400)

	assert.Equal(t, "fl_F400_N3", job.JobName())
	assert.Equal(t, "job_F400.sbatch", job.ScriptFilename())
	assert.Equal(t, "output/${SLURM_JOB_ID}_F400_N3_lr0.01.out", job.OutputLogPath())
	assert.Equal(t, "error/${SLURM_JOB_ID}_F400_N3_lr0.01.err", job.ErrorLogPath())
}

func TestLearningRateString(t *testing.T) {
	tests := []struct {
		lr   float64
		want string
	}{
		{0.01, "0.01"},
		{0.1, "0.1"},
		{1, "1"},
		{0.0005, "0.0005"},
		{3e-05, "3e-05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JobSpec{LearningRate: tt.lr}.LearningRateString())
	}
}

func TestJobNameEncodesSweepValueAndClients(t *testing.T) {
	names := map[string]struct{}{}
	for _, f := range []int{0, 100, 400} {
		for _, n := range []int{3, 10} {
			job := JobSpec{F: f, NumClients: n, LearningRate: 0.01}
			names[job.JobName()] = struct{}{}
		}
	}
	assert.Len(t, names, 6)
}

func TestScriptFilenamesDoNotCollide(t *testing.T) {
	config := DefaultLaunchConfig()
	assert.NotEqual(t,
		config.JobSpec(100).ScriptFilename(),
		config.JobSpec(400).ScriptFilename())
}
