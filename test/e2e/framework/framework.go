package framework

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
)

// findProjectRoot searches for the project root directory containing go.mod
func findProjectRoot(startDir string) string {
	dir := startDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if content, err := os.ReadFile(goModPath); err == nil {
			// Check if this go.mod declares the main module (not just requires it)
			if strings.HasPrefix(strings.TrimSpace(string(content)), "module github.com/Hanaasagi/jacarex\n") {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root directory
		}
		dir = parent
	}
	return ""
}

// Framework builds the jacarex binary and drives sessions in a pseudo-terminal
type Framework struct {
	BinaryPath string
	Timeout    time.Duration
}

// TestCase is a scripted playground session. Each entry in Lines is typed
// followed by Enter; Keys is sent raw afterwards (e.g. "\x04" for Ctrl-D).
type TestCase struct {
	Name           string
	Lines          []string
	Keys           string
	Args           []string
	ExpectedOutput string
	Timeout        time.Duration
}

// TestResult represents the result of a test case
type TestResult struct {
	Name    string
	Passed  bool
	Error   string
	Output  string
	Elapsed time.Duration
}

// NewFramework creates a new e2e test framework
func NewFramework() *Framework {
	return &Framework{
		Timeout: 5 * time.Second,
	}
}

// BuildBinary builds the jacarex binary for testing
func (f *Framework) BuildBinary() error {
	if f.BinaryPath != "" {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	projectRoot := findProjectRoot(wd)
	if projectRoot == "" {
		return fmt.Errorf("could not find project root directory from %s", wd)
	}

	buildDir := filepath.Join(projectRoot, "build")
	binaryPath := filepath.Join(buildDir, "jacarex")
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/jacarex")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to build binary: %w, output: %s", err, string(output))
	}

	f.BinaryPath = binaryPath
	return nil
}

// RunTest executes a single test case
func (f *Framework) RunTest(testCase TestCase) TestResult {
	start := time.Now()
	result := TestResult{Name: testCase.Name}
	fail := func(format string, args ...any) TestResult {
		result.Error = fmt.Sprintf(format, args...)
		result.Elapsed = time.Since(start)
		return result
	}

	if err := f.BuildBinary(); err != nil {
		return fail("failed to build binary: %v", err)
	}

	stateDir, err := os.MkdirTemp("", "jacarex-e2e-*")
	if err != nil {
		return fail("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(stateDir)

	args := append([]string{
		"--config", "NONE",
		"--history-file", filepath.Join(stateDir, "history.txt"),
	}, testCase.Args...)

	cmd := exec.Command(f.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "XDG_STATE_HOME="+stateDir)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fail("failed to start command: %v", err)
	}
	defer ptmx.Close()

	// Wait for program initialization
	time.Sleep(200 * time.Millisecond)

	for _, line := range testCase.Lines {
		if _, err := ptmx.Write([]byte(line + "\r")); err != nil {
			return fail("failed to send line %q: %v", line, err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	if testCase.Keys != "" {
		if _, err := ptmx.Write([]byte(testCase.Keys)); err != nil {
			return fail("failed to send keys: %v", err)
		}
	}

	timeout := testCase.Timeout
	if timeout == 0 {
		timeout = f.Timeout
	}
	timeoutCh := time.After(timeout)

	matchCh := make(chan string, 1)
	doneCh := make(chan string, 1)

	go func() {
		reader := bufio.NewReader(ptmx)
		var output strings.Builder
		for {
			b, err := reader.ReadByte()
			if err != nil {
				if err != io.EOF {
					output.WriteString(fmt.Sprintf("\n<read error: %v>", err))
				}
				doneCh <- output.String()
				return
			}

			output.WriteByte(b)
			if strings.Contains(output.String(), testCase.ExpectedOutput) {
				matchCh <- output.String()
				return
			}
		}
	}()

	select {
	case out := <-matchCh:
		result.Passed = true
		result.Output = out
	case out := <-doneCh:
		result.Error = "process output ended before the expected text appeared"
		result.Output = out
	case <-timeoutCh:
		result.Error = "test timed out"
	}

	_ = cmd.Process.Kill()
	_ = cmd.Wait()

	result.Elapsed = time.Since(start)
	return result
}

// RunTests executes multiple test cases
func (f *Framework) RunTests(testCases []TestCase) []TestResult {
	results := make([]TestResult, len(testCases))
	for i, testCase := range testCases {
		fmt.Printf("Running test: %s\n", testCase.Name)
		results[i] = f.RunTest(testCase)
		if results[i].Passed {
			fmt.Printf("PASS %s (%.2fs)\n", testCase.Name, results[i].Elapsed.Seconds())
		} else {
			fmt.Printf("FAIL %s (%.2fs): %s\n", testCase.Name, results[i].Elapsed.Seconds(), results[i].Error)
		}
	}
	return results
}
