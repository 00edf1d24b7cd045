package slurm

import (
	"errors"
	"io/ioutil"

	flag "github.com/juju/gnuflag"
)

// Option descriptions
const (
	sBatchAccountDesc       = `Charge resources used by this job to specified account. The account is an arbitrary string.`
	sBatchArrayDesc         = `Submit a job array, multiple jobs to be executed with identical parameters.`
	sBatchChdirDesc         = `Set the working directory of the batch script to directory before it is executed.`
	sBatchConstraintDesc    = `Only nodes having features matching the job constraints will be used to satisfy the request.`
	sBatchCpusPerTaskDesc   = `Advise the Slurm controller that ensuing job steps will require ncpus number of processors per task.`
	sBatchDependencyDesc    = `Defer the start of this job until the specified dependencies have been satisfied completed.`
	sBatchErrorDesc         = `Instruct Slurm to connect the batch script's standard error directly to the file name specified.`
	sBatchExclusiveDesc     = `The job allocation can not share nodes with other running jobs.`
	sBatchGpusDesc          = `Specify the total number of GPUs required for the job. An optional GPU type specification can be supplied. For example "--gpus=volta:3".`
	sBatchGresDesc          = `Specifies a comma delimited list of generic consumable resources. The format of each entry on the list is "name[[:type]:count]".`
	sBatchHoldDesc          = `Specify the job is to be submitted in a held state (priority of zero).`
	sBatchJobNameDesc       = `Specify a name for the job allocation. The default is the name of the batch script.`
	sBatchMailTypeDesc      = `Notify user by email when certain event types occur. Valid type values are NONE, BEGIN, END, FAIL, REQUEUE, ALL.`
	sBatchMailUserDesc      = `User to receive email notification of state changes as defined by --mail-type.`
	sBatchMemDesc           = `Specify the real memory required per node. Default units are megabytes. Different units can be specified using the suffix [K|M|G|T].`
	sBatchNodesDesc         = `Request that a minimum of minnodes nodes be allocated to this job.`
	sBatchNtasksDesc        = `Advise the Slurm controller that job steps run within the allocation will launch a maximum of number tasks.`
	sBatchOutputDesc        = `Instruct Slurm to connect the batch script's standard output directly to the file name specified.`
	sBatchPartitionDesc     = `Request a specific partition for the resource allocation.`
	sBatchQosDesc           = `Request a quality of service for the job.`
	sBatchTimeDesc          = `Set a limit on the total run time of the job allocation. Acceptable time formats include "minutes", "minutes:seconds", "hours:minutes:seconds", "days-hours", "days-hours:minutes" and "days-hours:minutes:seconds".`
)

// Options the job script renderer emits
// map[string]struct{} enables querying supported options using:
// _, ok := sBatchSupportedArgs()["<option>"]
func sBatchSupportedArgs() map[string]struct{} {
	return map[string]struct{}{
		"job-name":  struct{}{},
		"mem":       struct{}{},
		"time":      struct{}{},
		"gres":      struct{}{},
		"partition": struct{}{},
		"account":   struct{}{},
		"qos":       struct{}{},
		"mail-type": struct{}{},
		"mail-user": struct{}{},
	}
}

// Slurm uses Short and Long command line options
// Save both with golang flag
type gnuFlag struct {
	Short string
	Long  string
	Value interface{}
}

// Use map to set command line options. map key is the same as Long option
type gnuFlags map[string]gnuFlag

// Check if either Long or Short flag is used
func lookupGnuArg(name string, spec gnuFlags) (string, error) {
	for k, v := range spec {
		// map key is the same as Long option
		if name == k || (len(v.Short) > 0 && name == v.Short) {
			return k, nil
		}
	}
	return "", errors.New("sbatch: unable to parse arguments")
}

func (spec gnuFlags) addString(flags *flag.FlagSet, short, long, usage string) {
	var value *string
	if len(short) > 0 {
		value = setFlagString(flags, short, long, "", usage)
	} else {
		value = flags.String(long, "", usage)
	}
	spec[long] = gnuFlag{Short: short, Long: long, Value: value}
}

func (spec gnuFlags) addInt(flags *flag.FlagSet, short, long string, usage string) {
	var value *int
	if len(short) > 0 {
		value = setFlagInt(flags, short, long, 0, usage)
	} else {
		value = flags.Int(long, 0, usage)
	}
	spec[long] = gnuFlag{Short: short, Long: long, Value: value}
}

func (spec gnuFlags) addBool(flags *flag.FlagSet, short, long string, usage string) {
	var value *bool
	if len(short) > 0 {
		value = setFlagBool(flags, short, long, false, usage)
	} else {
		value = flags.Bool(long, false, usage)
	}
	spec[long] = gnuFlag{Short: short, Long: long, Value: value}
}

func parseSBatchArgs(args []string) (gnuFlags, *flag.FlagSet, error) {

	flags := flag.NewFlagSet(SBatchName, flag.ContinueOnError)
	flags.SetOutput(ioutil.Discard)

	options := make(gnuFlags)
	options.addString(flags, "A", "account", sBatchAccountDesc)
	options.addString(flags, "a", "array", sBatchArrayDesc)
	options.addString(flags, "D", "chdir", sBatchChdirDesc)
	options.addString(flags, "C", "constraint", sBatchConstraintDesc)
	options.addInt(flags, "c", "cpus-per-task", sBatchCpusPerTaskDesc)
	options.addString(flags, "d", "dependency", sBatchDependencyDesc)
	options.addString(flags, "e", "error", sBatchErrorDesc)
	options.addBool(flags, "", "exclusive", sBatchExclusiveDesc)
	options.addString(flags, "G", "gpus", sBatchGpusDesc)
	options.addString(flags, "", "gres", sBatchGresDesc)
	options.addBool(flags, "H", "hold", sBatchHoldDesc)
	options.addString(flags, "J", "job-name", sBatchJobNameDesc)
	options.addString(flags, "", "mail-type", sBatchMailTypeDesc)
	options.addString(flags, "", "mail-user", sBatchMailUserDesc)
	options.addString(flags, "", "mem", sBatchMemDesc)
	options.addInt(flags, "N", "nodes", sBatchNodesDesc)
	options.addInt(flags, "n", "ntasks", sBatchNtasksDesc)
	options.addString(flags, "o", "output", sBatchOutputDesc)
	options.addString(flags, "p", "partition", sBatchPartitionDesc)
	options.addString(flags, "q", "qos", sBatchQosDesc)
	options.addString(flags, "t", "time", sBatchTimeDesc)

	if err := flags.Parse(false, args); err != nil {
		return options, flags, err
	}
	return options, flags, nil
}
