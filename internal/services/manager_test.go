package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"panelscan/internal/logger"
	"panelscan/internal/model"
	"panelscan/internal/repository/sqlite"
	"panelscan/internal/services/storage"
	hub "panelscan/internal/services/websocket"
)

type fakeDetector struct {
	samples []model.ClassificationSample
	err     error
}

func (f *fakeDetector) DetectPanel(imageData []byte) ([]model.ClassificationSample, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.samples, nil
}

func (f *fakeDetector) Annotate(imageData []byte, samples []model.ClassificationSample) ([]byte, error) {
	return []byte("annotated"), nil
}

func setupManager(t *testing.T, detector Detector) (*Manager, *sqlite.AnalysisRepository) {
	t.Helper()

	dir := t.TempDir()
	log := logger.New(filepath.Join(dir, "logs"))

	db, err := sqlite.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewAnalysisRepository(db)
	store := storage.NewStore(filepath.Join(dir, "uploads"))
	hubService := hub.NewHubService(log)
	go hubService.Run()

	manager := NewManager([]Detector{detector}, repo, store, hubService, 4, log)
	t.Cleanup(manager.Stop)

	return manager, repo
}

func waitForStatus(t *testing.T, repo *sqlite.AnalysisRepository, id string, want model.AnalysisStatus) *model.Analysis {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		analysis, err := repo.GetByID(id)
		require.NoError(t, err)
		if analysis != nil && analysis.Status == want {
			return analysis
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("analysis %s never reached status %s", id, want)
	return nil
}

func queuedAnalysis(t *testing.T, repo *sqlite.AnalysisRepository, id string) {
	t.Helper()
	require.NoError(t, repo.Insert(&model.Analysis{
		ID:        id,
		Filename:  "panel.jpg",
		FilePath:  "/tmp/" + id + ".jpg",
		FileSize:  64,
		Status:    model.StatusQueued,
		CreatedAt: time.Now().UTC(),
	}))
}

func TestManager_ProcessesQueuedAnalysis(t *testing.T) {
	detector := &fakeDetector{samples: []model.ClassificationSample{
		{
			Category:    model.CategoryDust,
			Confidence:  0.77,
			Box:         model.BoundingBox{X: 1, Y: 2, Width: 30, Height: 40},
			Description: "dust film",
			Severity:    model.SeverityMedium,
		},
	}}
	manager, repo := setupManager(t, detector)

	queuedAnalysis(t, repo, "a1")
	require.True(t, manager.Enqueue(AnalysisTask{AnalysisID: "a1", Image: []byte("img")}))

	done := waitForStatus(t, repo, "a1", model.StatusDone)
	require.Len(t, done.Samples, 1)
	require.Equal(t, model.CategoryDust, done.Samples[0].Category)
	require.NotEmpty(t, done.AnnotatedPath)
}

// dialHub connects a real websocket client to the hub and waits until
// it is registered.
func dialHub(t *testing.T, hubService *hub.HubService) *ws.Conn {
	t.Helper()

	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hubService.Register(conn)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := ws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hubService.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hubService.ClientCount())
	return conn
}

func TestManager_FullQueueFailsAndNotifies(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(filepath.Join(dir, "logs"))

	db, err := sqlite.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewAnalysisRepository(db)
	store := storage.NewStore(filepath.Join(dir, "uploads"))
	hubService := hub.NewHubService(log)
	go hubService.Run()

	conn := dialHub(t, hubService)

	// No workers and capacity one: the second task cannot be queued.
	manager := NewManager(nil, repo, store, hubService, 1, log)
	t.Cleanup(manager.Stop)

	queuedAnalysis(t, repo, "a1")
	queuedAnalysis(t, repo, "a2")
	require.True(t, manager.Enqueue(AnalysisTask{AnalysisID: "a1", Image: []byte("img")}))
	require.False(t, manager.Enqueue(AnalysisTask{AnalysisID: "a2", Image: []byte("img")}))

	failed := waitForStatus(t, repo, "a2", model.StatusFailed)
	require.Empty(t, failed.Samples)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event hub.Event
	require.NoError(t, json.Unmarshal(message, &event))
	require.Equal(t, "analysis_failed", event.Type)
	require.Equal(t, "a2", event.AnalysisID)
	require.Equal(t, model.StatusFailed, event.Status)
}

func TestManager_DetectionFailureMarksFailed(t *testing.T) {
	detector := &fakeDetector{err: errors.New("bad image")}
	manager, repo := setupManager(t, detector)

	queuedAnalysis(t, repo, "a1")
	require.True(t, manager.Enqueue(AnalysisTask{AnalysisID: "a1", Image: []byte("img")}))

	failed := waitForStatus(t, repo, "a1", model.StatusFailed)
	require.Empty(t, failed.Samples)
}
