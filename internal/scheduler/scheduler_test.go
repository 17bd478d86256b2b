package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/internal/storage"
	"github.com/example/roadmap/pkg/models"
)

type recordingNotifier struct {
	reminders chan Reminder
	err       error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{reminders: make(chan Reminder, 10)}
}

func (n *recordingNotifier) SendReminder(r Reminder) error {
	if n.err != nil {
		return n.err
	}
	n.reminders <- r
	return nil
}

func testContent() models.Roadmap {
	return models.Roadmap{
		Title:      "Test roadmap",
		TargetDate: "2030-01-01",
		Phases: []models.Phase{
			{ID: "p1", Title: "One", Concepts: []models.Concept{{ID: "a"}, {ID: "b"}}},
			{ID: "p2", Title: "Two", Concepts: []models.Concept{{ID: "c"}, {ID: "d"}}},
		},
	}
}

func TestRunManualCheckSendsCurrentProgress(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.SetItem(ctx, progress.DefaultKey, `["a","c"]`))

	n := newRecordingNotifier()
	s := New(backend, testContent(), n, time.Hour, nil)
	s.now = func() time.Time { return time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, s.RunManualCheck(ctx))
	require.Len(t, n.reminders, 1)

	r := <-n.reminders
	assert.Equal(t, "Test roadmap", r.Title)
	assert.Equal(t, 50.0, r.Summary.Overall)
	require.Len(t, r.Summary.Phases, 2)
	assert.Equal(t, 1, r.Summary.Phases[0].CompletedCount)
	require.NotNil(t, r.Remaining)
	assert.Equal(t, 1, r.Remaining.Days)
}

func TestRunManualCheckSeesLaterWrites(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	n := newRecordingNotifier()
	s := New(backend, testContent(), n, time.Hour, nil)

	require.NoError(t, s.RunManualCheck(ctx))
	assert.Equal(t, 0, (<-n.reminders).Summary.CompletedCount)

	other := progress.New(backend)
	other.ToggleConcept(ctx, "d")

	require.NoError(t, s.RunManualCheck(ctx))
	assert.Equal(t, 1, (<-n.reminders).Summary.CompletedCount)
}

func TestRunManualCheckSkipsFinishedAndEmptyRoadmaps(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.SetItem(ctx, progress.DefaultKey, `["a","b","c","d"]`))
	n := newRecordingNotifier()

	require.NoError(t, New(backend, testContent(), n, time.Hour, nil).RunManualCheck(ctx))
	require.NoError(t, New(backend, models.Roadmap{}, n, time.Hour, nil).RunManualCheck(ctx))
	assert.Empty(t, n.reminders)
}

func TestRunManualCheckReportsNotifierErrors(t *testing.T) {
	n := newRecordingNotifier()
	n.err = errors.New("network down")

	s := New(storage.NewMemoryBackend(), testContent(), n, time.Hour, nil)
	err := s.RunManualCheck(context.Background())
	assert.ErrorIs(t, err, n.err)
}

func TestInvalidTargetDateIsIgnored(t *testing.T) {
	content := testContent()
	content.TargetDate = "someday"
	n := newRecordingNotifier()

	s := New(storage.NewMemoryBackend(), content, n, time.Hour, nil)
	require.NoError(t, s.RunManualCheck(context.Background()))
	assert.Nil(t, (<-n.reminders).Remaining)
}

func TestStartSendsFirstReminderImmediately(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	n := newRecordingNotifier()
	s := New(storage.NewMemoryBackend(), testContent(), n, time.Hour, nil)
	require.NoError(t, s.Start())

	select {
	case r := <-n.reminders:
		assert.Equal(t, 4, r.Summary.TotalCount)
	case <-time.After(5 * time.Second):
		t.Fatal("no reminder sent after start")
	}
	s.Stop()
}

func TestNewDefaultsInterval(t *testing.T) {
	s := New(storage.NewMemoryBackend(), testContent(), newRecordingNotifier(), 0, nil)
	assert.Equal(t, DefaultInterval, s.interval)
}
