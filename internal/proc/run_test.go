package proc

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_EmptyCommand(t *testing.T) {
	_, err := Run(context.Background(), Spec{})
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestRun_MissingExecutable(t *testing.T) {
	_, err := Run(context.Background(), Spec{Args: []string{"clikit-definitely-not-a-binary"}})
	require.Error(t, err)
}

func TestRun_InheritWritesToStreams(t *testing.T) {
	var out bytes.Buffer
	spec := helperSpec("echo", "hello", "world")
	spec.Stdout = &out

	res, err := Run(context.Background(), spec)
	require.NoError(t, err)
	require.True(t, res.Success())
	require.Equal(t, "hello world\n", out.String())
	require.Empty(t, res.Stdout, "inherit mode does not capture")
}

func TestRun_Capture(t *testing.T) {
	spec := helperSpec("both")
	spec.Capture = true

	res, err := Run(context.Background(), spec)
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "out\n", res.Stdout)
	require.Equal(t, "err\n", res.Stderr)
	require.Contains(t, res.Combined, "out\n")
	require.Contains(t, res.Combined, "err\n")
}

func TestRun_NonZeroExit(t *testing.T) {
	spec := helperSpec("exit", "7")
	spec.Capture = true

	res, err := Run(context.Background(), spec)
	require.NoError(t, err, "non-zero exit is not a run error")
	require.Equal(t, 7, res.ExitCode)
	require.False(t, res.Signaled)

	runErr := res.Err()
	var exitErr *ExitError
	require.True(t, errors.As(runErr, &exitErr))
	require.Equal(t, 7, exitErr.Code)
	require.Contains(t, runErr.Error(), "exited with code 7")
	require.Contains(t, runErr.Error(), "failing on purpose")
}

func TestRun_Signal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("signals are not reported on windows")
	}
	res, err := Run(context.Background(), helperSpec("kill"))
	require.NoError(t, err)
	require.Equal(t, 1, res.ExitCode)
	require.True(t, res.Signaled)
	require.Contains(t, res.Err().Error(), "terminated by a signal")
}

func TestRun_CancelInterruptsChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("interrupts cannot be delivered on windows")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := newReadyWriter()
	spec := helperSpec("trap")
	spec.Stdout = out
	cancelWhenReady(t, out, cancel)

	res, err := Run(ctx, spec)
	require.NoError(t, err)
	require.Equal(t, 7, res.ExitCode)
	require.False(t, res.Signaled)
	require.Equal(t, "ready\ncleanup\n", out.String())
}

func TestRun_CancelKillsAfterGrace(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("interrupts cannot be delivered on windows")
	}
	grace := InterruptGrace
	InterruptGrace = 50 * time.Millisecond
	t.Cleanup(func() { InterruptGrace = grace })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := newReadyWriter()
	spec := helperSpec("ignore")
	spec.Stdout = out
	cancelWhenReady(t, out, cancel)

	res, err := Run(ctx, spec)
	require.NoError(t, err)
	require.Equal(t, 1, res.ExitCode)
	require.True(t, res.Signaled)
}

func TestRun_EnvAndDir(t *testing.T) {
	dir := t.TempDir()

	spec := helperSpec("env", "CLIKIT_TEST_VALUE")
	spec.Env = append(spec.Env, "CLIKIT_TEST_VALUE=42")
	spec.Capture = true
	res, err := Run(context.Background(), spec)
	require.NoError(t, err)
	require.Equal(t, "42", strings.TrimSpace(res.Stdout))

	spec = helperSpec("pwd")
	spec.Dir = dir
	spec.Capture = true
	res, err = Run(context.Background(), spec)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(res.Stdout))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestResult_ErrNilOnSuccess(t *testing.T) {
	require.NoError(t, (&Result{}).Err())
}

func TestParallel_PreservesOrder(t *testing.T) {
	specs := []Spec{helperSpec("echo", "one"), helperSpec("exit", "3"), helperSpec("echo", "three")}
	for i := range specs {
		specs[i].Capture = true
	}

	results, err := Parallel(context.Background(), specs...)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "one\n", results[0].Stdout)
	require.Equal(t, 3, results[1].ExitCode)
	require.Equal(t, "three\n", results[2].Stdout)
}

func TestParallel_StartFailure(t *testing.T) {
	_, err := Parallel(context.Background(),
		helperSpec("echo", "ok"),
		Spec{Args: []string{"clikit-definitely-not-a-binary"}},
	)
	require.Error(t, err)
}
