package repkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/NaiHeeeee/repkg-gui/internal/services"
)

// BinaryName is the tool's executable name on PATH.
const BinaryName = "RePKG"

// ExtractOptions maps one to one onto RePKG extract flags.
type ExtractOptions struct {
	OutputDir    string
	IgnoreExts   string
	OnlyExts     string
	DebugInfo    bool
	Tex          bool
	SingleDir    bool
	Recursive    bool
	CopyProject  bool
	UseName      bool
	NoTexConvert bool
	Overwrite    bool
}

// InfoOptions maps onto RePKG info flags.
type InfoOptions struct {
	Sort         bool
	SortBy       string
	Tex          bool
	ProjectInfo  string
	PrintEntries bool
	TitleFilter  string
}

// Unpacker defines the behaviour the extraction orchestrator requires.
type Unpacker interface {
	Extract(ctx context.Context, input string, opts ExtractOptions) (string, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps RePKG CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a RePKG client. An empty binary falls back to discovery:
// a bin/ directory beside the current executable, then PATH.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DiscoverBinary()
	}
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "repkg", "new",
			"RePKG binary not found; install it or set extraction.binary", nil)
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary reports the resolved executable path or name.
func (c *Client) Binary() string { return c.binary }

// Extract unpacks one .pkg archive, returning the tool's stdout.
func (c *Client) Extract(ctx context.Context, input string, opts ExtractOptions) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", services.Wrap(services.ErrValidation, "repkg", "extract", "input archive required", nil)
	}

	args := []string{"extract"}
	if opts.OutputDir != "" {
		args = append(args, "-o", opts.OutputDir)
	}
	if opts.IgnoreExts != "" {
		args = append(args, "-i", opts.IgnoreExts)
	}
	if opts.OnlyExts != "" {
		args = append(args, "-e", opts.OnlyExts)
	}
	if opts.DebugInfo {
		args = append(args, "-d")
	}
	if opts.Tex {
		args = append(args, "-t")
	}
	if opts.SingleDir {
		args = append(args, "-s")
	}
	if opts.Recursive {
		args = append(args, "-r")
	}
	if opts.CopyProject {
		args = append(args, "-c")
	}
	if opts.UseName {
		args = append(args, "-n")
	}
	if opts.NoTexConvert {
		args = append(args, "--no-tex-convert")
	}
	if opts.Overwrite {
		args = append(args, "--overwrite")
	}
	args = append(args, input)

	return c.run(ctx, "extract", args)
}

// Info inspects a .pkg archive, returning the tool's stdout.
func (c *Client) Info(ctx context.Context, input string, opts InfoOptions) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", services.Wrap(services.ErrValidation, "repkg", "info", "input archive required", nil)
	}

	args := []string{"info"}
	if opts.Sort {
		args = append(args, "-s")
	}
	if opts.SortBy != "" {
		args = append(args, "-b", opts.SortBy)
	}
	if opts.Tex {
		args = append(args, "-t")
	}
	if opts.ProjectInfo != "" {
		args = append(args, "-p", opts.ProjectInfo)
	}
	if opts.PrintEntries {
		args = append(args, "-e")
	}
	if opts.TitleFilter != "" {
		args = append(args, "--title-filter", opts.TitleFilter)
	}
	args = append(args, input)

	return c.run(ctx, "info", args)
}

func (c *Client) run(ctx context.Context, op string, args []string) (string, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	output, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		return output, services.Wrap(services.ErrExternalTool, "repkg", op, "RePKG invocation failed", err)
	}
	return output, nil
}

// DiscoverBinary probes the locations the original tool ships RePKG in:
// bin/ under the working directory, the executable's own directory, then
// PATH. Returns "" when nothing is found.
func DiscoverBinary() string {
	if dir, err := os.Getwd(); err == nil {
		candidate := filepath.Join(dir, "bin", BinaryName)
		if isExecutableFile(candidate) {
			return candidate
		}
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), BinaryName)
		if isExecutableFile(candidate) {
			return candidate
		}
	}
	if path, err := exec.LookPath(BinaryName); err == nil {
		return path
	}
	return ""
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), fmt.Errorf("repkg exited with %d: %s",
				exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return stdout.String(), fmt.Errorf("run repkg: %w", err)
	}
	return stdout.String(), nil
}
