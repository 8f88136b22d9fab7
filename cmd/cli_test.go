package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestGenerateWatchesJobToCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/video/nova":
			require.NoError(t, r.ParseMultipartForm(10<<20))
			assert.Equal(t, "a fox leaping over a brook", r.FormValue("prompt"))
			assert.Equal(t, `{"durationSeconds":6}`, r.FormValue("metadata"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"job_id":"job-1","status":"QUEUED","progress":"Queued"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/status/job-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"status":"COMPLETED","progress":"Your video is ready!","video_url":"https://media.example.com/out.mp4"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook", "--duration", "6")
	require.NoError(t, err)
	assert.Contains(t, stdout, "job job-1")
	assert.Contains(t, stdout, "COMPLETED: Your video is ready!")
	assert.Contains(t, stdout, "https://media.example.com/out.mp4")

	data, err := os.ReadFile(filepath.Join(home, ".genstudio", "sessions.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"videoUrl": "https://media.example.com/out.mp4"`)
}

func TestGenerateNoWatchPrintsHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/video/nova", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"job_id":"job-1","status":"QUEUED"}`)
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook", "--no-watch")
	require.NoError(t, err)
	assert.Contains(t, stdout, "job job-1  QUEUED")
	assert.Contains(t, stdout, "gst watch")
}

func TestGenerateJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"job_id":"job-1","status":"QUEUED"}`)
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook", "--no-watch", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))

	var report jobReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "job-1", report.JobID)
	assert.Equal(t, "QUEUED", report.Status)
	assert.NotEmpty(t, report.SessionID)
}

func TestGenerateInlineImageResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/image/dreamlike-art/dreamlike-photoreal-2.0", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"image_urls":["https://media.example.com/fog-1.png","https://media.example.com/fog-2.png"]}`)
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "generate", "a lighthouse in thick fog", "--tool", "image")
	require.NoError(t, err)
	assert.Contains(t, stdout, "COMPLETED")
	assert.Contains(t, stdout, "https://media.example.com/fog-1.png")
	assert.Contains(t, stdout, "https://media.example.com/fog-2.png")
}

func TestGenerateSurfacesBackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprint(w, `{"detail":"Bedrock quota exceeded"}`)
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bedrock quota exceeded")

	stdout, _, err := executeCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Submission failed")
}

func TestGenerateRejectsUnknownTool(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook", "--tool", "audio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no models for tool")
}

func TestWatchResumesCurrentJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/video/nova":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"job_id":"job-7","status":"QUEUED"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/status/job-7":
			time.Sleep(200 * time.Millisecond)
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"status":"COMPLETED","progress":"Your video is ready!","video_url":"https://media.example.com/out.mp4"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook", "--no-watch")
	require.NoError(t, err)

	stdout, stderr, err := executeCLI(t, home, "watch")
	require.NoError(t, err)
	assert.Contains(t, stderr, "job-7")
	assert.Contains(t, stdout, "COMPLETED: Your video is ready!")
	assert.Contains(t, stdout, "https://media.example.com/out.mp4")
}

func TestWatchReplaysFinishedJobWithoutPolling(t *testing.T) {
	var statusCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/status/") {
			statusCalls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"image_urls":["https://media.example.com/fog-1.png"]}`)
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a lighthouse in thick fog", "--tool", "image")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "watch")
	require.NoError(t, err)
	assert.Contains(t, stdout, "COMPLETED")
	assert.Contains(t, stdout, "https://media.example.com/fog-1.png")
	assert.Equal(t, int32(0), statusCalls.Load())
}

func TestWatchFailedJobNotifiesAndSurfacesReason(t *testing.T) {
	var pushes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/video/nova":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"job_id":"job-3","status":"QUEUED"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/status/job-3":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"status":"FAILED","progress":"Bedrock invocation failed"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/push":
			pushes.Add(1)
			assert.Equal(t, "Gen Studio - Failed", r.Header.Get("Title"))
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), "Bedrock invocation failed")
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)
	t.Setenv("GENSTUDIO_NTFY_TOPIC", server.URL+"/push")

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bedrock invocation failed")
	assert.Equal(t, int32(1), pushes.Load())
}

func TestGenerateCompletionNotifies(t *testing.T) {
	var pushes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/video/nova":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"job_id":"job-9","status":"QUEUED"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/status/job-9":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"status":"COMPLETED","progress":"Your video is ready!","video_url":"https://media.example.com/out.mp4"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/push":
			pushes.Add(1)
			assert.Equal(t, "Gen Studio - Complete", r.Header.Get("Title"))
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), "a fox leaping over a brook")
			assert.Contains(t, string(body), "https://media.example.com/out.mp4")
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)
	t.Setenv("GENSTUDIO_NTFY_TOPIC", server.URL+"/push")

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook")
	require.NoError(t, err)
	assert.Equal(t, int32(1), pushes.Load())
}

func TestSessionListShowsPinnedFirst(t *testing.T) {
	server := newInlineImageBackend(t)
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "first prompt", "--tool", "image")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "generate", "second prompt", "--tool", "image")
	require.NoError(t, err)

	rows := listSessions(t, home)
	require.Len(t, rows, 2)
	first := rows[0]
	assert.Equal(t, "second prompt", first.Prompt)
	assert.True(t, first.Active)

	var older sessionRow
	for _, row := range rows {
		if row.Prompt == "first prompt" {
			older = row
		}
	}
	require.NotEmpty(t, older.ID)

	_, _, err = executeCLI(t, home, "session", "pin", older.ID)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pinned")
	assert.Less(t,
		strings.Index(stdout, "first prompt"),
		strings.Index(stdout, "second prompt"))
}

func TestSessionUseByPrefixAndShow(t *testing.T) {
	server := newInlineImageBackend(t)
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a storm over the harbor", "--tool", "image")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "generate", "a lighthouse in thick fog", "--tool", "image")
	require.NoError(t, err)

	var target sessionRow
	for _, row := range listSessions(t, home) {
		if row.Prompt == "a storm over the harbor" {
			target = row
		}
	}
	require.NotEmpty(t, target.ID)

	stdout, _, err := executeCLI(t, home, "session", "use", target.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, stdout, "Active session is now "+target.ID[:8])

	stdout, _, err = executeCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "a storm over the harbor")
	assert.Contains(t, stdout, "Transcript")
	assert.Contains(t, stdout, "[active]")
}

func TestSessionDeleteActiveFallsBackToRemaining(t *testing.T) {
	server := newInlineImageBackend(t)
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "first prompt", "--tool", "image")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "generate", "second prompt", "--tool", "image")
	require.NoError(t, err)

	var active sessionRow
	for _, row := range listSessions(t, home) {
		if row.Active {
			active = row
		}
	}
	require.NotEmpty(t, active.ID)

	stdout, _, err := executeCLI(t, home, "session", "delete", active.ID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted session")

	stdout, _, err = executeCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "first prompt")
}

func TestSessionDuplicateCreatesCopy(t *testing.T) {
	server := newInlineImageBackend(t)
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a lighthouse in thick fog", "--tool", "image")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "session", "duplicate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Duplicated session")

	rows := listSessions(t, home)
	require.Len(t, rows, 2)

	stdout, _, err = executeCLI(t, home, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(copy)")

	stdout, _, err = executeCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "a lighthouse in thick fog (copy)")
}

func TestSessionExportWritesImportableFile(t *testing.T) {
	server := newInlineImageBackend(t)
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a lighthouse in thick fog", "--tool", "image")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "export.json")
	stdout, _, err := executeCLI(t, home, "session", "export", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported to "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.True(t, json.Valid(data))
	assert.Contains(t, string(data), `"prompt": "a lighthouse in thick fog"`)
	assert.Contains(t, string(data), `"statusLog"`)
	assert.Contains(t, string(data), `"messages"`)

	stdout, _, err = executeCLI(t, home, "session", "export", "--all", "--output", "-")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))
	assert.True(t, strings.HasPrefix(stdout, "["))
}

func TestSessionListReadsHandWrittenStore(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home))

	rows := listSessions(t, home)
	require.Len(t, rows, 2)

	prompts := []string{rows[0].Prompt, rows[1].Prompt}
	assert.Contains(t, prompts, "hand written one")
	assert.Contains(t, prompts, "hand written two")

	for _, row := range rows {
		if row.Prompt == "hand written two" {
			assert.True(t, row.Active)
		}
	}
}

func TestModelsFilterByTool(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "models")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nova")
	assert.Contains(t, stdout, "Stable Diffusion XL")

	stdout, _, err = executeCLI(t, home, "models", "--tool", "image")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "nova")
	assert.Contains(t, stdout, "dreamlike-art/dreamlike-photoreal-2.0")

	stdout, _, err = executeCLI(t, home, "models", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"endpoint": "/api/video/nova"`)
}

func TestHealthReportsBackendState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"ok":true,"jobs":2}`)
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "health")
	require.NoError(t, err)
	assert.Contains(t, stdout, "backend ok, 2 job(s) in flight")

	stdout, _, err = executeCLI(t, home, "health", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"ok": true`)
}

func TestHealthSendsTestNotification(t *testing.T) {
	var pushes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/health":
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"ok":true,"jobs":0}`)
		case r.Method == http.MethodPost && r.URL.Path == "/push":
			pushes.Add(1)
			assert.Equal(t, "Gen Studio - Test", r.Header.Get("Title"))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)
	t.Setenv("GENSTUDIO_NTFY_TOPIC", server.URL+"/push")

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "health", "--notify")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test notification sent")
	assert.Equal(t, int32(1), pushes.Load())
}

func TestConfigInitWritesDefaults(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote configuration to")

	data, err := os.ReadFile(filepath.Join(home, ".genstudio", "config.toml"))
	require.NoError(t, err)

	var cfg fileConfig
	require.NoError(t, toml.Unmarshal(data, &cfg))
	assert.Equal(t, defaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, filepath.Join(home, ".genstudio", "sessions.json"), cfg.Sessions.Path)
	assert.Equal(t, "5s", cfg.Poll.Interval)

	_, _, err = executeCLI(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = executeCLI(t, home, "config", "init", "--overwrite")
	require.NoError(t, err)
}

func TestPlayRunsConfiguredPlayer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"video_url":"https://media.example.com/out.mp4"}`)
	}))
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)
	t.Setenv("GENSTUDIO_PLAYER", "echo")

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a fox leaping over a brook")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "play")
	require.NoError(t, err)
	assert.Contains(t, stdout, "https://media.example.com/out.mp4")
}

func TestPlayFailsWithoutVideo(t *testing.T) {
	server := newInlineImageBackend(t)
	defer server.Close()

	t.Setenv("GENSTUDIO_API_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "generate", "a lighthouse in thick fog", "--tool", "image")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "play")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no video yet")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// newInlineImageBackend serves a synchronous image result for any submission,
// for tests that only need sessions in the store.
func newInlineImageBackend(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"image_urls":["https://media.example.com/fog-1.png"]}`)
	}))
}

func listSessions(t *testing.T, home string) []sessionRow {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "session", "list", "--json")
	require.NoError(t, err)

	var rows []sessionRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	return rows
}

func writeSessionsFixture(home string) error {
	storeDir := filepath.Join(home, ".genstudio")
	if err := os.MkdirAll(storeDir, 0o700); err != nil {
		return err
	}

	sessions := `[
  {
    "id": "22222222-2222-4222-8222-222222222222",
    "prompt": "hand written two",
    "tool": "video",
    "model": "nova",
    "createdAt": "2026-08-21T10:30:00Z",
    "statusLog": [],
    "messages": []
  },
  {
    "id": "11111111-1111-4111-8111-111111111111",
    "prompt": "hand written one",
    "tool": "image",
    "model": "dreamlike-art/dreamlike-photoreal-2.0",
    "createdAt": "2026-08-20T09:00:00Z",
    "statusLog": [],
    "messages": []
  }
]`
	if err := os.WriteFile(filepath.Join(storeDir, "sessions.json"), []byte(sessions), 0o600); err != nil {
		return err
	}

	active := "22222222-2222-4222-8222-222222222222\n"
	return os.WriteFile(filepath.Join(storeDir, "active-session"), []byte(active), 0o600)
}
