package core

import (
	"fmt"
	"strconv"
)

// Default constants
const (
	DefaultSweepValue   = 400
	DefaultLearningRate = 0.01
	DefaultNumClients   = 3
	DefaultDataset      = "mnist"
	DefaultWorkDir      = "."
)

const (
	DefaultMemory      = "16G"
	DefaultTime        = "24:00:00"
	DefaultGpus        = 1
	DefaultMailType    = "END,FAIL"
	DefaultActivate    = "source activate fl"
	DefaultDeactivate  = "conda deactivate"
	DefaultInterpreter = "python"
	DefaultProgram     = "fast_main3.py"
)

// Log directories the training job redirects into. They must exist on the
// cluster before the job runs.
const (
	OutputLogDir = "output"
	ErrorLogDir  = "error"
)

// SlurmJobIDVar is expanded by the job's shell at run time, not here.
const SlurmJobIDVar = "${SLURM_JOB_ID}"

// Datasets the training program has models for
var Datasets = map[string]struct{}{
	"mnist":   struct{}{},
	"cifar10": struct{}{},
}

// One sweep configuration
type JobSpec struct {
	F            int     `json:"f"`
	LearningRate float64 `json:"lr"`
	NumClients   int     `json:"num_clients"`
	Dataset      string  `json:"dataset"`
}

// Scheduler resource request shared by all jobs of a sweep
/*
#SBATCH --job-name=fl_F400_N3
#SBATCH --mem=16G
#SBATCH --time=24:00:00
#SBATCH --gres=gpu:1
*/
type Directives struct {
	Memory    string `json:"mem"`
	Time      string `json:"time"`
	Gpus      int    `json:"gpus"`
	Partition string `json:"partition,omitempty"`
	Account   string `json:"account,omitempty"`
	QOS       string `json:"qos,omitempty"`
	MailType  string `json:"mail_type,omitempty"`
	MailUser  string `json:"mail_user,omitempty"`
}

// Commands run around the training program inside the job
type Environment struct {
	Activate       string `json:"activate"`
	Deactivate     string `json:"deactivate"`
	Interpreter    string `json:"interpreter"`
	Program        string `json:"program"`
	TensorboardTag string `json:"tensorboard_tag,omitempty"`
}

// Layout for fedsweep config file
/*
values: [100, 400]
lr: 0.01
num_clients: 3
dataset: mnist
directives:
  mem: 32G
  partition: gpu
*/
type LaunchConfig struct {
	Values       []int       `json:"values"`
	LearningRate float64     `json:"lr"`
	NumClients   int         `json:"num_clients"`
	Dataset      string      `json:"dataset"`
	WorkDir      string      `json:"workdir"`
	Directives   Directives  `json:"directives"`
	Environment  Environment `json:"environment"`
}

func DefaultDirectives() Directives {
	return Directives{
		Memory:   DefaultMemory,
		Time:     DefaultTime,
		Gpus:     DefaultGpus,
		MailType: DefaultMailType,
	}
}

func DefaultEnvironment() Environment {
	return Environment{
		Activate:    DefaultActivate,
		Deactivate:  DefaultDeactivate,
		Interpreter: DefaultInterpreter,
		Program:     DefaultProgram,
	}
}

func DefaultLaunchConfig() LaunchConfig {
	return LaunchConfig{
		Values:       []int{DefaultSweepValue},
		LearningRate: DefaultLearningRate,
		NumClients:   DefaultNumClients,
		Dataset:      DefaultDataset,
		WorkDir:      DefaultWorkDir,
		Directives:   DefaultDirectives(),
		Environment:  DefaultEnvironment(),
	}
}

// JobSpec for sweep value f using the fixed parameters of the config
func (c LaunchConfig) JobSpec(f int) JobSpec {
	return JobSpec{
		F:            f,
		LearningRate: c.LearningRate,
		NumClients:   c.NumClients,
		Dataset:      c.Dataset,
	}
}

// Shortest decimal form that parses back to the same value (0.01 -> "0.01")
func (j JobSpec) LearningRateString() string {
	return strconv.FormatFloat(j.LearningRate, 'g', -1, 64)
}

func (j JobSpec) JobName() string {
	return fmt.Sprintf("fl_F%d_N%d", j.F, j.NumClients)
}

func (j JobSpec) logSuffix() string {
	return fmt.Sprintf("F%d_N%d_lr%s", j.F, j.NumClients, j.LearningRateString())
}

func (j JobSpec) OutputLogPath() string {
	return OutputLogDir + "/" + SlurmJobIDVar + "_" + j.logSuffix() + ".out"
}

func (j JobSpec) ErrorLogPath() string {
	return ErrorLogDir + "/" + SlurmJobIDVar + "_" + j.logSuffix() + ".err"
}

// Embeds F so scripts of one sweep never share a filename
func (j JobSpec) ScriptFilename() string {
	return fmt.Sprintf("job_F%d.sbatch", j.F)
}
