package core

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const DefaultShell = "/bin/sh"

// Longest job script line accepted
const MaxScriptLine = 16 * 1024 * 1024

// Data for HPC job script
/*
#!/bin/bash
#SBATCH --job-name=job_test    # Job name
#SBATCH --time=00:05:00
pwd; hostname; date
*/
type JobScript struct {
	Shell string `json:"shell"`
	// Args parsed from SBATCH directive
	Args   []string `json:"args"`
	Script []byte   `json:"script"`
}

func ParseJobScriptFile(directive, filename string) (JobScript, error) {
	file, err := os.Open(filename)
	if err != nil {
		return JobScript{}, errors.Wrap(err, "open job script")
	}
	defer file.Close()
	return ParseJobScript(directive, file)
}

// Directives are only read up to the first command; later ones are
// ordinary comments to the scheduler.
func ParseJobScript(directive string, r io.Reader) (JobScript, error) {
	var args []string
	var script bytes.Buffer

	shell := DefaultShell
	prefix := "#" + directive
	parsed := false
	first := true

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxScriptLine)
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "#!") {
				shell = strings.TrimSpace(line[2:])
				continue
			}
		}
		trimmed := strings.TrimSpace(line)
		if !parsed && strings.HasPrefix(trimmed, prefix) {
			fields := strings.Fields(trimmed[len(prefix):])
			for _, field := range fields {
				if strings.HasPrefix(field, "#") {
					break
				}
				args = append(args, field)
			}
			continue
		}
		if len(trimmed) > 0 && !strings.HasPrefix(trimmed, "#") {
			parsed = true
		}
		script.WriteString(line)
		script.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return JobScript{}, errors.Wrap(err, "read job script")
	}
	return JobScript{
		Shell:  shell,
		Args:   args,
		Script: script.Bytes(),
	}, nil
}
