package clipboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnv struct {
	installed map[string]bool
	failing   map[string]bool
	ran       []string
	stdin     string
}

func (f *fakeEnv) lookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (f *fakeEnv) run(_ context.Context, path string, _ []string, stdin string) error {
	f.ran = append(f.ran, path)
	if f.failing[path] {
		return errors.New("exit status 1")
	}
	f.stdin = stdin
	return nil
}

func newTestWriter(env *fakeEnv, tty bool, out io.Writer) *Writer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Writer{
		tools:      DefaultTools,
		out:        out,
		isTerminal: func() bool { return tty },
		lookPath:   env.lookPath,
		run:        env.run,
		logger:     logger,
	}
}

func TestCopy_UsesFirstInstalledTool(t *testing.T) {
	env := &fakeEnv{installed: map[string]bool{"xclip": true, "pbcopy": true}}
	w := newTestWriter(env, true, io.Discard)

	m, err := w.Copy(context.Background(), "adb shell wm size 1080x2400")
	require.NoError(t, err)
	assert.Equal(t, MethodTool, m)
	assert.Equal(t, []string{"/usr/bin/xclip"}, env.ran)
	assert.Equal(t, "adb shell wm size 1080x2400", env.stdin)
}

func TestCopy_FallsThroughFailingTool(t *testing.T) {
	env := &fakeEnv{
		installed: map[string]bool{"wl-copy": true, "xclip": true},
		failing:   map[string]bool{"/usr/bin/wl-copy": true},
	}
	w := newTestWriter(env, false, io.Discard)

	m, err := w.Copy(context.Background(), "adb devices")
	require.NoError(t, err)
	assert.Equal(t, MethodTool, m)
	assert.Equal(t, []string{"/usr/bin/wl-copy", "/usr/bin/xclip"}, env.ran)
}

func TestCopy_OSC52OnTerminal(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(&fakeEnv{}, true, &buf)

	m, err := w.Copy(context.Background(), "adb devices")
	require.NoError(t, err)
	assert.Equal(t, MethodOSC52, m)
	assert.Equal(t, "\x1b]52;c;YWRiIGRldmljZXM=\a", buf.String())
}

func TestCopy_Unavailable(t *testing.T) {
	w := newTestWriter(&fakeEnv{}, false, io.Discard)

	_, err := w.Copy(context.Background(), "adb devices")
	assert.ErrorIs(t, err, domain.ErrClipboardUnavailable)
	assert.Equal(t, "Copy is not supported here", domain.UserMessage(err))
}

func TestCopy_EmptyText(t *testing.T) {
	w := newTestWriter(&fakeEnv{}, true, io.Discard)

	_, err := w.Copy(context.Background(), "  \n")
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}
