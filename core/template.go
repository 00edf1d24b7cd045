package core

import (
	"bytes"
	"text/template"

	"github.com/pkg/errors"
)

// The following values are available to the job script template:
//
// Job          JobSpec for the sweep value
// Directives   scheduler resource request
// Environment  activation, interpreter and program
// Tensorboard  value passed to --log-to-tensorboard
var jobScriptTemplate = template.Must(template.New("sbatch").Parse(`#!/bin/bash
#SBATCH --job-name={{.Job.JobName}}
#SBATCH --mem={{.Directives.Memory}}
#SBATCH --time={{.Directives.Time}}
{{- if gt .Directives.Gpus 0}}
#SBATCH --gres=gpu:{{.Directives.Gpus}}
{{- end}}
{{- with .Directives.Partition}}
#SBATCH --partition={{.}}
{{- end}}
{{- with .Directives.Account}}
#SBATCH --account={{.}}
{{- end}}
{{- with .Directives.QOS}}
#SBATCH --qos={{.}}
{{- end}}
{{- with .Directives.MailType}}
#SBATCH --mail-type={{.}}
{{- end}}
{{- with .Directives.MailUser}}
#SBATCH --mail-user={{.}}
{{- end}}

{{.Environment.Activate}}
{{.Environment.Interpreter}} {{.Environment.Program}} --dataset={{.Job.Dataset}} --num-clients={{.Job.NumClients}} --f={{.Job.F}} --lr={{.Job.LearningRateString}} --log-to-tensorboard={{.Tensorboard}} > {{.Job.OutputLogPath}} 2> {{.Job.ErrorLogPath}}
{{.Environment.Deactivate}}
`))

type jobScriptData struct {
	Job         JobSpec
	Directives  Directives
	Environment Environment
	Tensorboard string
}

// Render the batch script for one sweep value. The result depends only on
// the arguments; the job id is left for the scheduler's shell to expand.
func RenderJobScript(job JobSpec, directives Directives, env Environment) ([]byte, error) {
	data := jobScriptData{
		Job:         job,
		Directives:  directives,
		Environment: env,
		Tensorboard: env.TensorboardTag,
	}
	if len(data.Tensorboard) == 0 {
		data.Tensorboard = job.JobName()
	}
	var b bytes.Buffer
	if err := jobScriptTemplate.Execute(&b, data); err != nil {
		return nil, errors.Wrapf(err, "render job script for F=%d", job.F)
	}
	return b.Bytes(), nil
}
