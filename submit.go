package main

import (
	"fmt"

	"github.com/pkg/errors"

	core "fedsweep.io/core"
	logger "fedsweep.io/logger"
	slurm "fedsweep.io/slurm"
	sweep "fedsweep.io/sweep"
)

// Root-level options, so "fedsweep -F 100" and "fedsweep submit -F 100"
// behave the same. render reads Config from here too.
type SubmitOptions struct {
	Config string `short:"c" long:"config" description:"sweep config file (YAML or JSON)"`
	Values []int  `short:"F" long:"f" description:"sweep value, repeat for several; overrides the config"`
	Check  bool   `long:"check" description:"check #SBATCH directives before submitting"`
	DryRun bool   `long:"dry-run" description:"write and check job scripts without submitting them"`
	Sbatch string `long:"sbatch" description:"sbatch binary (default $FEDSWEEP_SBATCH or sbatch)"`
}

type SubmitCommand struct{}

var (
	submitOptions SubmitOptions
	submitCommand SubmitCommand
)

func loadConfig(path string, values []int) (core.LaunchConfig, error) {
	config, filename, err := core.ReadLaunchConfig(path)
	if err != nil {
		return core.LaunchConfig{}, err
	}
	if len(filename) > 0 {
		logger.InfoPrintf("using config %s", filename)
	}
	if len(values) > 0 {
		config.Values = values
	}
	if err := config.Validate(); err != nil {
		return core.LaunchConfig{}, errors.Wrap(err, "invalid sweep config")
	}
	return config, nil
}

func (x *SubmitOptions) Submit() error {
	config, err := loadConfig(x.Config, x.Values)
	if err != nil {
		return errors.Wrap(err, "submit")
	}
	logger.DebugObj("config", config)

	submitter := slurm.NewSbatch()
	if len(x.Sbatch) > 0 {
		submitter.Binary = x.Sbatch
	}
	launcher := sweep.NewLauncher(config, submitter)
	launcher.Check = x.Check
	launcher.DryRun = x.DryRun

	submissions, err := launcher.Run(commandContext, config.Values)
	for _, s := range submissions {
		if x.DryRun {
			fmt.Fprintf(stdout, "Checked job script for F=%d\n", s.F)
		} else {
			fmt.Fprintf(stdout, "Submitted F=%d as job %s\n", s.F, s.JobID)
		}
	}
	return err
}

func (x *SubmitCommand) Execute(args []string) error {
	return submitOptions.Submit()
}

func init() {
	parser.AddGroup("Submit Options", "", &submitOptions)
	parser.AddCommand("submit",
		"Submit the sweep",
		"Render one job script per sweep value, submit it with sbatch and remove it. Runs when no command is given.",
		&submitCommand)
}
