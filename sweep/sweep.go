package sweep

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	core "fedsweep.io/core"
	logger "fedsweep.io/logger"
	slurm "fedsweep.io/slurm"
)

var ErrNoSweepValues = errors.New("sweep: no sweep values")

// One accepted job
type Submission struct {
	F          int         `json:"f"`
	ScriptPath string      `json:"script_path"`
	JobID      slurm.JobID `json:"job_id"`
}

// Launcher renders, writes, submits and removes one job script per sweep
// value. It stops at the first failure.
type Launcher struct {
	Config    core.LaunchConfig
	Submitter slurm.Submitter
	// Check parses the #SBATCH directives of each script before submitting
	Check bool
	// DryRun writes and checks scripts but never calls the submitter
	DryRun bool
}

func NewLauncher(config core.LaunchConfig, submitter slurm.Submitter) *Launcher {
	return &Launcher{
		Config:    config,
		Submitter: submitter,
	}
}

// Script text for sweep value f; no side effects
func (l *Launcher) Render(f int) ([]byte, error) {
	return core.RenderJobScript(l.Config.JobSpec(f), l.Config.Directives, l.Config.Environment)
}

func (l *Launcher) ScriptPath(f int) string {
	return filepath.Join(l.Config.WorkDir, l.Config.JobSpec(f).ScriptFilename())
}

// Run the sweep in order. A failed step returns immediately: later values
// are not submitted and the failing script is left on disk. A job the
// scheduler accepted is always in the returned submissions, even when a
// later step for it failed.
func (l *Launcher) Run(ctx context.Context, values []int) ([]Submission, error) {
	if len(values) == 0 {
		return nil, ErrNoSweepValues
	}
	submissions := make([]Submission, 0, len(values))
	for _, f := range values {
		submission, err := l.launch(ctx, f)
		if err != nil {
			if len(submission.JobID) > 0 {
				submissions = append(submissions, submission)
			}
			return submissions, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, nil
}

func (l *Launcher) launch(ctx context.Context, f int) (Submission, error) {
	script, err := l.Render(f)
	if err != nil {
		return Submission{}, err
	}
	path := l.ScriptPath(f)
	if err := os.WriteFile(path, script, 0644); err != nil {
		return Submission{}, errors.Wrapf(err, "sweep: write job script for F=%d", f)
	}
	logger.DebugPrintf("sweep: wrote %s", path)

	if l.Check || l.DryRun {
		report, err := slurm.CheckJobScriptFile(path)
		if err != nil {
			return Submission{}, errors.Wrapf(err, "sweep: check %s", path)
		}
		logger.DebugObj("directives", report.Options)
	}

	submission := Submission{F: f, ScriptPath: path}
	if l.DryRun {
		logger.InfoPrintf("sweep: dry run, not submitting %s", path)
	} else {
		id, err := l.Submitter.Submit(ctx, path)
		if err != nil {
			return Submission{}, errors.Wrapf(err, "sweep: submit F=%d", f)
		}
		submission.JobID = id
		logger.InfoPrintf("sweep: submitted %s as job %s", l.Config.JobSpec(f).JobName(), id)
	}

	if err := os.Remove(path); err != nil {
		// os.Remove already names the path
		return submission, errors.Wrapf(err, "sweep: clean up F=%d", f)
	}
	return submission, nil
}
