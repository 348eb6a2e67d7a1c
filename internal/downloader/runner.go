package downloader

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"regexp"
)

// ProgressFunc receives download progress percentages ("42.3") as yt-dlp
// reports them on stdout.
type ProgressFunc func(percent string)

// runner abstracts subprocess execution so tests can stand in for yt-dlp.
type runner interface {
	Run(ctx context.Context, progress ProgressFunc, name string, args ...string) ([]byte, error)
}

var progressRe = regexp.MustCompile(`^\[download\]\s+([\d.]+)%`)

// execRunner runs the real binary. Stdout is scanned line by line for
// progress reports (the command is built with --newline for exactly this),
// stderr is buffered separately and appended after the process exits so both
// streams are available for error classification.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, progress ProgressFunc, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var output bytes.Buffer
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		output.WriteString(line)
		output.WriteByte('\n')
		if progress == nil {
			continue
		}
		if m := progressRe.FindStringSubmatch(line); m != nil {
			progress(m[1])
		}
	}

	err = cmd.Wait()
	output.Write(stderr.Bytes())
	return output.Bytes(), err
}
