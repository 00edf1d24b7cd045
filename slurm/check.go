package slurm

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	flag "github.com/juju/gnuflag"
	"github.com/pkg/errors"

	core "fedsweep.io/core"
	logger "fedsweep.io/logger"
)

const sbatchDirective = "SBATCH"

// Directive options found in a job script, keyed by long option name
type DirectiveReport struct {
	Options     map[string]interface{}
	Unsupported []string
}

var (
	memPattern  = regexp.MustCompile("^([0-9]+)([KMGT]?)$")
	timePattern = regexp.MustCompile(`^([0-9]+-)?[0-9]+(:[0-9]{1,2}){0,2}$`)
	gresPattern = regexp.MustCompile("^gpu(:[a-zA-Z0-9_-]+)?(:[0-9]+)?$")
)

// Memory request in whole GB, rounded up. Default unit is megabytes.
func decodeMemReq(req string) (mem int, err error) {
	match := memPattern.FindStringSubmatch(req)
	if match == nil {
		err = errors.Errorf("invalid mem request %q", req)
		return
	}
	base, perr := strconv.ParseInt(match[1], 10, 64)
	if perr != nil {
		err = errors.Wrapf(perr, "invalid mem request %q", req)
		return
	}
	bytes := float64(base)
	switch match[2] {
	case "K":
		bytes *= 1024
	case "", "M":
		bytes *= 1024 * 1024
	case "G":
		bytes *= 1024 * 1024 * 1024
	case "T":
		bytes *= 1024 * 1024 * 1024 * 1024
	}
	mem = int(math.Ceil(bytes / (1024 * 1024 * 1024)))
	return
}

// GPU count from a gres entry such as gpu, gpu:2 or gpu:v100:2
func decodeGpusReq(req string) (gpus int, err error) {
	for _, resource := range strings.Split(req, ",") {
		if !strings.HasPrefix(resource, "gpu") {
			continue
		}
		if !gresPattern.MatchString(resource) {
			err = errors.Errorf("invalid gpu request %q", resource)
			return
		}
		split := strings.Split(resource, ":")
		count := 1
		if n, perr := strconv.Atoi(split[len(split)-1]); perr == nil && len(split) > 1 {
			count = n
		}
		gpus += count
	}
	return
}

// Parse the #SBATCH directives of a job script and check the values the
// renderer controls. Options sbatch knows but the renderer never emits are
// reported, not rejected.
func CheckJobScript(script core.JobScript) (DirectiveReport, error) {
	options, flags, err := parseSBatchArgs(script.Args)
	if err != nil {
		return DirectiveReport{}, errors.Wrap(err, "sbatch: invalid directive")
	}
	if flags.NArg() > 0 {
		return DirectiveReport{}, errors.Errorf("sbatch: unexpected directive argument %q", flags.Arg(0))
	}
	report := DirectiveReport{Options: make(map[string]interface{})}
	var lookupErr error
	flags.Visit(func(f *flag.Flag) {
		key, err := lookupGnuArg(f.Name, options)
		if err != nil {
			lookupErr = err
			return
		}
		report.Options[key] = f.Value.(flag.Getter).Get()
	})
	if lookupErr != nil {
		return DirectiveReport{}, lookupErr
	}
	for k := range report.Options {
		if _, ok := sBatchSupportedArgs()[k]; !ok {
			report.Unsupported = append(report.Unsupported, k)
		}
	}
	sort.Strings(report.Unsupported)
	if len(report.Unsupported) > 0 {
		logger.WarningPrintf("sbatch: %d options not managed by fedsweep: %s",
			len(report.Unsupported), strings.Join(report.Unsupported, " "))
	}

	if val, ok := report.Options["mem"]; ok {
		if _, err := decodeMemReq(val.(string)); err != nil {
			return report, errors.Wrap(err, "sbatch")
		}
	}
	if val, ok := report.Options["time"]; ok {
		if !timePattern.MatchString(val.(string)) {
			return report, errors.Errorf("sbatch: invalid time limit %q", val)
		}
	}
	if val, ok := report.Options["gres"]; ok {
		if _, err := decodeGpusReq(val.(string)); err != nil {
			return report, errors.Wrap(err, "sbatch")
		}
	}
	if _, ok := report.Options["job-name"]; !ok {
		logger.WarningPrintf("sbatch: job script has no job name")
	}
	return report, nil
}

func CheckJobScriptFile(filename string) (DirectiveReport, error) {
	script, err := core.ParseJobScriptFile(sbatchDirective, filename)
	if err != nil {
		return DirectiveReport{}, err
	}
	return CheckJobScript(script)
}

func CheckJobScriptBytes(data []byte) (DirectiveReport, error) {
	script, err := core.ParseJobScript(sbatchDirective, strings.NewReader(string(data)))
	if err != nil {
		return DirectiveReport{}, err
	}
	return CheckJobScript(script)
}
