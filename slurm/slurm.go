package slurm

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"

	flag "github.com/juju/gnuflag"
	"github.com/pkg/errors"

	logger "fedsweep.io/logger"
)

// Slurm CLI commands
const (
	SBatchName = "sbatch"
)

// Overrides the sbatch binary, e.g. a wrapper that submits over ssh
const SBatchEnv = "FEDSWEEP_SBATCH"

var ErrUnparsableReply = errors.New("sbatch: unable to parse job id from reply")

var jobIDPattern = regexp.MustCompile(`^[0-9]+(_[0-9]+)?$`)

// Opaque job identifier assigned by the scheduler at submission
type JobID string

// Queues a job script with the scheduler. The job runs later, elsewhere;
// Submit returns once the scheduler has accepted or rejected it.
type Submitter interface {
	Submit(ctx context.Context, scriptPath string) (JobID, error)
}

type Sbatch struct {
	Binary    string
	ExtraArgs []string
}

// Sbatch using FEDSWEEP_SBATCH when set, otherwise sbatch from PATH
func NewSbatch() *Sbatch {
	binary := SBatchName
	if env := os.Getenv(SBatchEnv); len(env) > 0 {
		binary = env
	}
	return &Sbatch{Binary: binary}
}

func (s *Sbatch) Submit(ctx context.Context, scriptPath string) (JobID, error) {
	binary := s.Binary
	if len(binary) == 0 {
		binary = SBatchName
	}
	args := append(append([]string{}, s.ExtraArgs...), scriptPath)
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	logger.DebugPrintf("sbatch: running %s %s", binary, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "sbatch: submit %s failed: %s",
			scriptPath, strings.TrimSpace(stdout.String()+"\n"+stderr.String()))
	}
	// the reply is on stdout; stderr only carries warnings once sbatch succeeded
	if msg := strings.TrimSpace(stderr.String()); len(msg) > 0 {
		logger.WarningPrintf("sbatch: %s: %s", scriptPath, msg)
	}
	return ParseSubmitReply(stdout.String())
}

// Typical sbatch reply: "Submitted batch job 2723147"
// With --parsable: "2723147" or "2723147;cluster"
func ParseSubmitReply(reply string) (JobID, error) {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return "", ErrUnparsableReply
	}
	id := fields[len(fields)-1]
	if i := strings.Index(id, ";"); i >= 0 {
		id = id[:i]
	}
	if !jobIDPattern.MatchString(id) {
		return "", errors.Wrapf(ErrUnparsableReply, "%q", strings.TrimSpace(reply))
	}
	return JobID(id), nil
}

// Slurm support Short and Long command line options
// Register both with the same Golang flag
func setFlagString(flags *flag.FlagSet, short, long, value, usage string) *string {
	flagVar := flags.String(short, value, usage)
	flags.StringVar(flagVar, long, value, usage)
	return flagVar
}

func setFlagInt(flags *flag.FlagSet, short, long string, value int, usage string) *int {
	flagVar := flags.Int(short, value, usage)
	flags.IntVar(flagVar, long, value, usage)
	return flagVar
}

func setFlagBool(flags *flag.FlagSet, short, long string, value bool, usage string) *bool {
	flagVar := flags.Bool(short, value, usage)
	flags.BoolVar(flagVar, long, value, usage)
	return flagVar
}
