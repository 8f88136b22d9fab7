package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/ports"
	"github.com/bnema/genstudio-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitterStartsSessionAndRegistersJob(t *testing.T) {
	store := newFileStore(t)

	client := mocks.NewMockStudioClient(t)
	client.EXPECT().Submit(mockAnyContext(), ports.SubmitRequest{
		Prompt:      "a fox leaping over a brook",
		Tool:        domain.ToolVideo,
		Model:       "nova",
		Endpoint:    "/api/video/nova",
		Metadata:    `{"durationSeconds":6}`,
		Attachments: []string{"/tmp/inputs/sketch.png"},
	}).Return(ports.SubmitReceipt{JobID: "job-42", Status: domain.StatusQueued, Progress: "Queued"}, nil)

	submitter := NewSubmitter(store, client, nil, nil)

	result, err := submitter.Submit(context.Background(), SubmitCommand{
		Prompt:      "a fox leaping over a brook",
		Tool:        domain.ToolVideo,
		Metadata:    `{"durationSeconds":6}`,
		Attachments: []string{"/tmp/inputs/sketch.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobID("job-42"), result.Job.ID)
	assert.Equal(t, domain.StatusQueued, result.Job.Status)
	require.Len(t, result.Job.History, 1)

	assert.Equal(t, domain.JobID("job-42"), result.Session.CurrentJobID)
	assert.Equal(t, []string{"sketch.png"}, result.Session.Attachments)
	assert.Contains(t, result.Session.StatusLog, "QUEUED: Queued")
	require.Len(t, result.Session.Messages, 1)
	assert.Equal(t, domain.RoleUser, result.Session.Messages[0].Role)
	assert.Equal(t, "a fox leaping over a brook", result.Session.Messages[0].Content)
	assert.Equal(t, []string{"sketch.png"}, result.Session.Messages[0].Attachments)

	active, err := store.ActiveSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, active.ID)
}

func TestSubmitterAppendsToExistingSession(t *testing.T) {
	store := newFileStore(t)

	existing, err := store.CreateSession(context.Background(), CreateSessionCommand{
		Prompt: "a storm over the harbor",
		Tool:   domain.ToolVideo,
	})
	require.NoError(t, err)

	client := mocks.NewMockStudioClient(t)
	client.EXPECT().Submit(mockAnyContext(), ports.SubmitRequest{
		Prompt:   "make the waves taller",
		Tool:     domain.ToolVideo,
		Model:    "nova",
		Endpoint: "/api/video/nova",
	}).Return(ports.SubmitReceipt{JobID: "job-7", Status: domain.StatusQueued}, nil)

	submitter := NewSubmitter(store, client, nil, nil)

	result, err := submitter.Submit(context.Background(), SubmitCommand{
		SessionID: existing.ID,
		Prompt:    "make the waves taller",
		Tool:      domain.ToolVideo,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, result.Session.ID)
	assert.Equal(t, domain.JobID("job-7"), result.Session.CurrentJobID)

	sessions, err := store.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestSubmitterRejectsEmptyPrompt(t *testing.T) {
	store := newFileStore(t)
	client := mocks.NewMockStudioClient(t)
	submitter := NewSubmitter(store, client, nil, nil)

	_, err := submitter.Submit(context.Background(), SubmitCommand{Prompt: "   ", Tool: domain.ToolVideo})
	require.ErrorContains(t, err, "prompt or attachment")
}

func TestSubmitterRejectsUnknownModel(t *testing.T) {
	store := newFileStore(t)
	client := mocks.NewMockStudioClient(t)
	submitter := NewSubmitter(store, client, nil, nil)

	_, err := submitter.Submit(context.Background(), SubmitCommand{
		Prompt: "a fox leaping over a brook",
		Tool:   domain.ToolVideo,
		Model:  "imaginary-model",
	})
	require.ErrorIs(t, err, domain.ErrUnknownModel)
}

func TestSubmitterRecordsBackendRejection(t *testing.T) {
	store := newFileStore(t)

	submitErr := errors.New("submit generation request: Bedrock quota exceeded")
	client := mocks.NewMockStudioClient(t)
	client.EXPECT().Submit(mockAnyContext(), ports.SubmitRequest{
		Prompt:   "a fox leaping over a brook",
		Tool:     domain.ToolVideo,
		Model:    "nova",
		Endpoint: "/api/video/nova",
	}).Return(ports.SubmitReceipt{}, submitErr)

	submitter := NewSubmitter(store, client, nil, nil)

	_, err := submitter.Submit(context.Background(), SubmitCommand{
		Prompt: "a fox leaping over a brook",
		Tool:   domain.ToolVideo,
	})
	require.ErrorIs(t, err, submitErr)

	session, err := store.ActiveSession(context.Background())
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)

	last := session.Messages[1]
	assert.Equal(t, domain.RoleAssistant, last.Role)
	assert.Equal(t, domain.MessageError, last.Status)
	assert.Contains(t, last.Content, "Bedrock quota exceeded")
	assert.Contains(t, session.StatusLog, "Submission failed: submit generation request: Bedrock quota exceeded")

	assert.Empty(t, session.Jobs)
	assert.Empty(t, session.CurrentJobID)
}

func TestSubmitterSynthesizesLocalJobForInlineResult(t *testing.T) {
	store := newFileStore(t)

	client := mocks.NewMockStudioClient(t)
	client.EXPECT().Submit(mockAnyContext(), ports.SubmitRequest{
		Prompt:   "a lighthouse in thick fog",
		Tool:     domain.ToolImage,
		Model:    "dreamlike-art/dreamlike-photoreal-2.0",
		Endpoint: "/api/image/dreamlike-art/dreamlike-photoreal-2.0",
	}).Return(ports.SubmitReceipt{
		ImageURLs: []string{
			"https://cdn.example.com/fog-1.png",
			"https://cdn.example.com/fog-2.png",
		},
	}, nil)

	submitter := NewSubmitter(store, client, nil, nil)

	result, err := submitter.Submit(context.Background(), SubmitCommand{
		Prompt: "a lighthouse in thick fog",
		Tool:   domain.ToolImage,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Job.ID)
	assert.Equal(t, domain.StatusCompleted, result.Job.Status)
	assert.Equal(t, []string{
		"https://cdn.example.com/fog-1.png",
		"https://cdn.example.com/fog-2.png",
	}, result.Job.ImageURLs)

	session := result.Session
	assert.Equal(t, result.Job.ID, session.CurrentJobID)
	assert.Contains(t, session.StatusLog, domain.StatusCompleted)
	require.Len(t, session.Messages, 2)

	last := session.Messages[1]
	assert.Equal(t, domain.RoleAssistant, last.Role)
	assert.Equal(t, domain.MessageSuccess, last.Status)
	assert.Equal(t, result.Job.ID, last.JobID)
	assert.Len(t, last.ImageURLs, 2)
}

func TestSubmitterAttachesInlineVideoToSession(t *testing.T) {
	store := newFileStore(t)

	client := mocks.NewMockStudioClient(t)
	client.EXPECT().Submit(mockAnyContext(), ports.SubmitRequest{
		Prompt:   "a fox leaping over a brook",
		Tool:     domain.ToolVideo,
		Model:    "nova",
		Endpoint: "/api/video/nova",
	}).Return(ports.SubmitReceipt{
		Progress: "Your video is ready!",
		VideoURL: "https://cdn.example.com/final.mp4",
	}, nil)

	submitter := NewSubmitter(store, client, nil, nil)

	result, err := submitter.Submit(context.Background(), SubmitCommand{
		Prompt: "a fox leaping over a brook",
		Tool:   domain.ToolVideo,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/final.mp4", result.Job.VideoURL)
	assert.Equal(t, "https://cdn.example.com/final.mp4", result.Session.VideoURL)
	assert.Contains(t, result.Session.StatusLog, "COMPLETED: Your video is ready!")
}

func TestSubmitterDefaultsQueuedWhenBackendOmitsStatus(t *testing.T) {
	store := newFileStore(t)

	client := mocks.NewMockStudioClient(t)
	client.EXPECT().Submit(mockAnyContext(), ports.SubmitRequest{
		Prompt:   "a fox leaping over a brook",
		Tool:     domain.ToolVideo,
		Model:    "nova",
		Endpoint: "/api/video/nova",
	}).Return(ports.SubmitReceipt{JobID: "job-3"}, nil)

	submitter := NewSubmitter(store, client, nil, nil)

	result, err := submitter.Submit(context.Background(), SubmitCommand{
		Prompt: "a fox leaping over a brook",
		Tool:   domain.ToolVideo,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQueued, result.Job.Status)
	assert.Contains(t, result.Session.StatusLog, domain.StatusQueued)
}
