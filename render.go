package main

import (
	"github.com/pkg/errors"

	sweep "fedsweep.io/sweep"
)

type RenderCommand struct {
	Args struct {
		Value int `positional-arg-name:"F" description:"sweep value to render"`
	} `positional-args:"true" required:"1"`
}

var renderCommand RenderCommand

func (x *RenderCommand) Execute(args []string) error {
	config, err := loadConfig(submitOptions.Config, []int{x.Args.Value})
	if err != nil {
		return errors.Wrap(err, "render")
	}
	script, err := sweep.NewLauncher(config, nil).Render(x.Args.Value)
	if err != nil {
		return err
	}
	_, err = stdout.Write(script)
	return err
}

func init() {
	parser.AddCommand("render",
		"Print a job script",
		"Print the job script for one sweep value without writing or submitting it",
		&renderCommand)
}
