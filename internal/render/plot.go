package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/prompt"
)

// Plot renders by asking the model for a self-contained plotting program and
// executing it in an isolated child process. The generated code is untrusted:
// it runs in its own process group under a hard wall-clock timeout, and any
// failure is absorbed into a blank placeholder artifact so the critique loop
// can continue.
type Plot struct {
	client      gateway.Client
	rawData     string
	interpreter string
	timeout     time.Duration
	logger      *zap.Logger
}

func NewPlot(client gateway.Client, rawData, interpreter string, timeout time.Duration, logger *zap.Logger) *Plot {
	return &Plot{
		client:      client,
		rawData:     rawData,
		interpreter: interpreter,
		timeout:     timeout,
		logger:      logger,
	}
}

func (p *Plot) Render(ctx context.Context, description, outPath string) error {
	response, err := p.client.GenerateText(ctx, gateway.TextRequest{
		Prompt:      prompt.PlotCode(description, p.rawData),
		Temperature: 0.3,
		MaxTokens:   4096,
	})
	if err != nil {
		return fmt.Errorf("failed to generate plot code: %w", err)
	}

	code := InjectOutputPath(ExtractCode(response), outPath)

	codePath := strings.TrimSuffix(outPath, ".png") + ".py"
	if err := os.WriteFile(codePath, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write plot program: %w", err)
	}

	if err := p.execute(ctx, codePath, outPath); err != nil {
		p.logger.Warn("plot code execution failed, writing placeholder",
			zap.String("path", outPath),
			zap.Error(err))
		return writePlaceholder(outPath)
	}

	p.logger.Info("plot saved", zap.String("path", outPath))
	return nil
}

func (p *Plot) execute(ctx context.Context, codePath, outPath string) error {
	cmd := exec.Command(p.interpreter, codePath)
	// Own process group so a runaway program and its children die together
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	output, err := p.runBounded(ctx, cmd)
	if err != nil {
		if len(output) > 0 {
			p.logger.Debug("plot program output", zap.ByteString("output", output))
		}
		return err
	}

	if _, err := os.Stat(outPath); err != nil {
		return fmt.Errorf("plot program exited cleanly but produced no output file")
	}
	return nil
}

func (p *Plot) runBounded(ctx context.Context, cmd *exec.Cmd) ([]byte, error) {
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start plot program: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				return buf.Bytes(), fmt.Errorf("plot program exited with code %d", exitErr.ExitCode())
			}
			return buf.Bytes(), err
		}
		return buf.Bytes(), nil

	case <-time.After(p.timeout):
		syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		<-done
		return nil, fmt.Errorf("plot program timed out after %s", p.timeout)

	case <-ctx.Done():
		syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		<-done
		return nil, ctx.Err()
	}
}

var outputPathAssignment = regexp.MustCompile(`(?m)^OUTPUT_PATH\s*=\s*["'].*["']\s*$`)

// ExtractCode pulls the program out of a model response: the first python
// fence wins, then any fence, then the raw response.
func ExtractCode(response string) string {
	if idx := strings.Index(response, "```python"); idx != -1 {
		body := response[idx+len("```python"):]
		if end := strings.Index(body, "```"); end != -1 {
			return strings.TrimSpace(body[:end])
		}
	}
	if idx := strings.Index(response, "```"); idx != -1 {
		body := response[idx+3:]
		if end := strings.Index(body, "```"); end != -1 {
			return strings.TrimSpace(body[:end])
		}
	}
	return strings.TrimSpace(response)
}

// InjectOutputPath strips any OUTPUT_PATH the model wrote and pins the
// variable to the artifact path as the program's first line.
func InjectOutputPath(code, outPath string) string {
	code = outputPathAssignment.ReplaceAllString(code, "")
	return fmt.Sprintf("OUTPUT_PATH = %q\n%s", outPath, code)
}
