package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	slurm "fedsweep.io/slurm"
)

type CheckCommand struct {
	Args struct {
		Scripts []string `positional-arg-name:"jobscript" description:"job script to check"`
	} `positional-args:"true" required:"1"`
}

var checkCommand CheckCommand

func (x *CheckCommand) Execute(args []string) error {
	for _, script := range x.Args.Scripts {
		report, err := slurm.CheckJobScriptFile(script)
		if err != nil {
			return errors.Wrapf(err, "check %s", script)
		}
		fmt.Fprintf(stdout, "%s: %d directives ok\n", script, len(report.Options))
		if len(report.Unsupported) > 0 {
			fmt.Fprintf(stdout, "%s: not managed by fedsweep: %s\n", script,
				strings.Join(report.Unsupported, " "))
		}
	}
	return nil
}

func init() {
	parser.AddCommand("check",
		"Check job scripts",
		"Parse the #SBATCH directives of job scripts and report invalid values",
		&checkCommand)
}
