package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/viper"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/logging"
	"github.com/bnema/genstudio-cli/internal/ports"
)

const (
	configName       = "config"
	configType       = "toml"
	sessionsPathKey  = "sessions.path"
	sessionsFileMode = 0o600
	sessionsDirMode  = 0o700
	configDirName    = ".genstudio"
	sessionsFileName = "sessions.json"
	activeFileName   = "active-session"
	lockFileName     = "sessions.json.lock"
	tempFilePattern  = ".sessions-*.json.tmp"
	activeTempPattern = ".active-*.tmp"
	lockRetryDelay   = 25 * time.Millisecond
)

type Repository struct {
	sessionsPath string
	activePath   string
	mu           *sync.RWMutex
	flk          *flock.Flock
	logger       *slog.Logger
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, logger *slog.Logger) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, sessionsFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(sessionsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	sessionsPath := cfg.GetString(sessionsPathKey)
	if sessionsPath == "" {
		return nil, errors.New("sessions path is empty")
	}
	sessionsPath, err = normalizeSessionsPath(sessionsPath)
	if err != nil {
		return nil, err
	}

	storeDir := filepath.Dir(sessionsPath)
	if err := os.MkdirAll(storeDir, sessionsDirMode); err != nil {
		return nil, fmt.Errorf("create sessions directory: %w", err)
	}

	return &Repository{
		sessionsPath: sessionsPath,
		activePath:   filepath.Join(storeDir, activeFileName),
		mu:           lockForPath(sessionsPath),
		flk:          flock.New(filepath.Join(storeDir, lockFileName)),
		logger:       logger,
	}, nil
}

func (r *Repository) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	release, err := r.lockStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(session)
	updated := false
	for i := range file {
		if file[i].ID == encoded.ID {
			// a record arriving without its transcript or jobs keeps the
			// stored ones, so re-creating an id never wipes history
			if len(encoded.Messages) == 0 {
				encoded.Messages = file[i].Messages
			}
			if len(encoded.Jobs) == 0 {
				encoded.Jobs = file[i].Jobs
			}
			file[i] = encoded
			updated = true
			break
		}
	}

	// new sessions go to the front, the list is ordered newest first
	if !updated {
		file = append([]sessionSchema{encoded}, file...)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.SessionID) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Session{}, err
	}

	for _, entry := range file {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Session{}, domain.ErrSessionNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(file))
	for _, entry := range file {
		sessions = append(sessions, fromSchema(entry))
	}

	return sessions, nil
}

// Update reloads the stored session, applies mutate and writes the result
// back while holding both the in-process and the file lock. Concurrent
// writers on the same store cannot shadow each other's fields this way.
func (r *Repository) Update(ctx context.Context, id domain.SessionID, mutate func(*domain.Session)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	release, err := r.lockStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for i := range file {
		if file[i].ID != string(id) {
			continue
		}
		session := fromSchema(file[i])
		mutate(&session)
		session.ID = id
		file[i] = toSchema(session)

		if err := ctx.Err(); err != nil {
			return err
		}
		return r.writeSchema(file)
	}

	return domain.ErrSessionNotFound
}

// Delete removes the session if present. Deleting an unknown id is a
// no-op so repeated deletes stay idempotent.
func (r *Repository) Delete(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	release, err := r.lockStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file[:0]
	removed := false
	for _, entry := range file {
		if entry.ID == string(id) {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}

	if !removed {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(kept)
}

func (r *Repository) ActiveID(ctx context.Context) (domain.SessionID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.activePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read active session file: %w", err)
	}

	return domain.SessionID(strings.TrimSpace(string(data))), nil
}

func (r *Repository) SetActiveID(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	release, err := r.lockStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	if id == "" {
		if err := os.Remove(r.activePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("clear active session file: %w", err)
		}
		return nil
	}

	return writeFileAtomic(r.activePath, []byte(string(id)+"\n"), activeTempPattern)
}

func (r *Repository) lockStore(ctx context.Context) (func(), error) {
	if _, err := r.flk.TryLockContext(ctx, lockRetryDelay); err != nil {
		return nil, fmt.Errorf("lock sessions store: %w", err)
	}
	return func() { _ = r.flk.Unlock() }, nil
}

func (r *Repository) readSchema() ([]sessionSchema, error) {
	data, err := os.ReadFile(r.sessionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions file: %w", err)
	}

	var file []sessionSchema
	if err := json.Unmarshal(data, &file); err != nil {
		// the store is a cache of remote work, a broken file should not
		// brick the CLI: warn and start over, the next save replaces it
		r.logger.Warn("sessions file is corrupt, starting with an empty store",
			"path", r.sessionsPath, "error", err)
		return nil, nil
	}

	now := time.Now()
	for i := range file {
		file[i].normalize(now)
	}

	return file, nil
}

func normalizeSessionsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve sessions path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file []sessionSchema) error {
	if err := os.MkdirAll(filepath.Dir(r.sessionsPath), sessionsDirMode); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	if file == nil {
		file = []sessionSchema{}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	return writeFileAtomic(r.sessionsPath, data, tempFilePattern)
}

func writeFileAtomic(path string, data []byte, pattern string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(sessionsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(path, sessionsFileMode); err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}

	return nil
}

func toSchema(session domain.Session) sessionSchema {
	messages := make([]messageSchema, 0, len(session.Messages))
	for _, msg := range session.Messages {
		messages = append(messages, toMessageSchema(msg))
	}

	var jobs map[string]jobSchema
	if len(session.Jobs) > 0 {
		jobs = make(map[string]jobSchema, len(session.Jobs))
		for id, job := range session.Jobs {
			jobs[string(id)] = toJobSchema(job)
		}
	}

	statusLog := session.StatusLog
	if statusLog == nil {
		statusLog = []string{}
	}

	return sessionSchema{
		ID:           string(session.ID),
		Prompt:       session.Prompt,
		Tool:         string(session.Tool),
		Model:        session.Model,
		CreatedAt:    formatTime(session.CreatedAt),
		VideoURL:     session.VideoURL,
		StatusLog:    statusLog,
		Attachments:  session.Attachments,
		Messages:     messages,
		CurrentJobID: string(session.CurrentJobID),
		Jobs:         jobs,
		Pinned:       session.Pinned,
	}
}

func fromSchema(entry sessionSchema) domain.Session {
	messages := make([]domain.Message, 0, len(entry.Messages))
	for _, msg := range entry.Messages {
		messages = append(messages, fromMessageSchema(msg))
	}

	jobs := make(map[domain.JobID]domain.Job, len(entry.Jobs))
	for id, job := range entry.Jobs {
		jobs[domain.JobID(id)] = fromJobSchema(job)
	}

	statusLog := entry.StatusLog
	if statusLog == nil {
		statusLog = []string{}
	}
	attachments := entry.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	return domain.Session{
		ID:           domain.SessionID(entry.ID),
		Prompt:       entry.Prompt,
		Tool:         domain.Tool(entry.Tool),
		Model:        entry.Model,
		CreatedAt:    parseTime(entry.CreatedAt),
		VideoURL:     entry.VideoURL,
		StatusLog:    statusLog,
		Attachments:  attachments,
		Messages:     messages,
		CurrentJobID: domain.JobID(entry.CurrentJobID),
		Jobs:         jobs,
		Pinned:       entry.Pinned,
	}
}

func toMessageSchema(msg domain.Message) messageSchema {
	return messageSchema{
		Role:        string(msg.Role),
		Content:     msg.Content,
		Tool:        string(msg.Tool),
		Model:       msg.Model,
		Attachments: msg.Attachments,
		Status:      string(msg.Status),
		VideoURL:    msg.VideoURL,
		ImageURLs:   msg.ImageURLs,
		JobID:       string(msg.JobID),
		Timestamp:   formatTime(msg.Timestamp),
	}
}

func fromMessageSchema(msg messageSchema) domain.Message {
	return domain.Message{
		Role:        domain.MessageRole(msg.Role),
		Content:     msg.Content,
		Tool:        domain.Tool(msg.Tool),
		Model:       msg.Model,
		Attachments: msg.Attachments,
		Status:      domain.MessageStatus(msg.Status),
		VideoURL:    msg.VideoURL,
		ImageURLs:   msg.ImageURLs,
		JobID:       domain.JobID(msg.JobID),
		Timestamp:   parseTime(msg.Timestamp),
	}
}

func toJobSchema(job domain.Job) jobSchema {
	history := make([]statusEntrySchema, 0, len(job.History))
	for _, entry := range job.History {
		history = append(history, statusEntrySchema{
			Status:    entry.Status,
			Progress:  entry.Progress,
			Timestamp: formatTime(entry.Timestamp),
		})
	}

	return jobSchema{
		ID:        string(job.ID),
		Tool:      string(job.Tool),
		Model:     job.Model,
		CreatedAt: formatTime(job.CreatedAt),
		Status:    job.Status,
		Progress:  job.Progress,
		History:   history,
		VideoURL:  job.VideoURL,
		ImageURLs: job.ImageURLs,
	}
}

func fromJobSchema(job jobSchema) domain.Job {
	history := make([]domain.StatusEntry, 0, len(job.History))
	for _, entry := range job.History {
		history = append(history, domain.StatusEntry{
			Status:    entry.Status,
			Progress:  entry.Progress,
			Timestamp: parseTime(entry.Timestamp),
		})
	}

	return domain.Job{
		ID:        domain.JobID(job.ID),
		Tool:      domain.Tool(job.Tool),
		Model:     job.Model,
		CreatedAt: parseTime(job.CreatedAt),
		Status:    job.Status,
		Progress:  job.Progress,
		History:   history,
		VideoURL:  job.VideoURL,
		ImageURLs: job.ImageURLs,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
