package transport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kylemath/cursor-launcher/internal/store"
	"github.com/kylemath/cursor-launcher/internal/transport"
	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	mu    sync.Mutex
	calls []launchCall
	err   error
}

type launchCall struct {
	path      string
	newWindow bool
}

func (f *fakeLauncher) Open(path string, newWindow bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, launchCall{path, newWindow})
	return f.err
}

func (f *fakeLauncher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type testEnv struct {
	srv      *httptest.Server
	pinned   *store.PinnedStore
	recent   *store.RecentLog
	launcher *fakeLauncher
	dir      string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		pinned:   store.NewPinnedStore(filepath.Join(dir, "pinned.json")),
		recent:   store.NewRecentLog(filepath.Join(dir, "recent.json"), 20),
		launcher: &fakeLauncher{},
		dir:      dir,
	}
	router := transport.NewRouter(transport.Deps{
		Pinned:       env.pinned,
		RecentLog:    env.recent,
		Launcher:     env.launcher,
		DashboardDir: dir,
		OutputPath:   filepath.Join(dir, "dashboard.html"),
	})
	env.srv = httptest.NewServer(router)
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) get(t *testing.T, path string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(e.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestTogglePinRoundTrip(t *testing.T) {
	env := newEnv(t)
	q := "/toggle-pin?path=" + url.QueryEscape("/root/X")

	code, body := env.get(t, q)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, true, body["pinned"])
	require.Equal(t, []string{"/root/X"}, env.pinned.Paths())

	code, body = env.get(t, q)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, body["pinned"])
	require.Empty(t, env.pinned.Paths())
}

func TestTogglePinMissingPath(t *testing.T) {
	env := newEnv(t)

	code, body := env.get(t, "/toggle-pin")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "error", body["status"])
	require.NotEmpty(t, body["message"])
}

func TestOpenLaunchesAndRecords(t *testing.T) {
	env := newEnv(t)
	target := t.TempDir()

	code, body := env.get(t, "/open-in-cursor?path="+url.QueryEscape(target)+"&new=true")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])

	require.Equal(t, []launchCall{{target, true}}, env.launcher.calls)
	entries := env.recent.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, target, entries[0].Path)
}

func TestOpenNonexistentPath(t *testing.T) {
	env := newEnv(t)

	code, body := env.get(t, "/open-in-cursor?path=/nonexistent")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "error", body["status"])
	require.Zero(t, env.launcher.callCount())
	require.Empty(t, env.recent.Entries())
}

func TestOpenLaunchFailureStillAcknowledged(t *testing.T) {
	env := newEnv(t)
	env.launcher.err = os.ErrNotExist
	target := t.TempDir()

	code, body := env.get(t, "/open-in-cursor?path="+url.QueryEscape(target))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])
	require.Len(t, env.recent.Entries(), 1)
}

func TestOpenDefaultsToReusedWindow(t *testing.T) {
	env := newEnv(t)
	target := t.TempDir()

	code, _ := env.get(t, "/open-in-cursor?path="+url.QueryEscape(target)+"&new=maybe")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []launchCall{{target, false}}, env.launcher.calls)
}

func TestIndexServesGeneratedDocument(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "dashboard.html"),
		[]byte("<html>dash</html>"), 0o644))

	resp, err := http.Get(env.srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStaticFallthrough(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "extra.txt"), []byte("hello"), 0o644))

	resp, err := http.Get(env.srv.URL + "/extra.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(env.srv.URL + "/missing.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
