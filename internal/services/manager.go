package services

import (
	"sync"

	"panelscan/internal/logger"
	"panelscan/internal/model"
	"panelscan/internal/repository"
	"panelscan/internal/services/storage"
	"panelscan/internal/services/websocket"
)

// Detector is the inference collaborator boundary. The pipeline only
// consumes its sample output; how the samples are produced is not its
// concern.
type Detector interface {
	DetectPanel(imageData []byte) ([]model.ClassificationSample, error)
	Annotate(imageData []byte, samples []model.ClassificationSample) ([]byte, error)
}

// AnalysisTask is one queued upload waiting for a detection worker.
type AnalysisTask struct {
	AnalysisID string
	Image      []byte
}

// Manager runs the analysis pipeline: queued uploads are classified by
// a worker pool, persisted, annotated and announced on the hub.
type Manager struct {
	detectors  []Detector
	repo       repository.AnalysisRepository
	store      *storage.Store
	hubService *websocket.HubService
	logger     *logger.Logger

	processingQueue chan AnalysisTask
	numWorkers      int
	wg              sync.WaitGroup
}

func NewManager(detectors []Detector, repo repository.AnalysisRepository, store *storage.Store, hubService *websocket.HubService, queueCapacity int, logger *logger.Logger) *Manager {
	if queueCapacity <= 0 {
		queueCapacity = 100
	}

	manager := &Manager{
		detectors:       detectors,
		repo:            repo,
		store:           store,
		hubService:      hubService,
		logger:          logger,
		processingQueue: make(chan AnalysisTask, queueCapacity),
		numWorkers:      len(detectors),
	}

	for i := 0; i < manager.numWorkers; i++ {
		manager.wg.Add(1)
		go manager.processingWorker(i)
	}

	manager.logger.Info("Manager started with %d worker(s)", manager.numWorkers)
	return manager
}

// Enqueue hands an analysis task to the worker pool. It reports false
// when the queue is full; the analysis is then marked failed.
func (m *Manager) Enqueue(task AnalysisTask) bool {
	select {
	case m.processingQueue <- task:
		m.logger.Info("Analysis %s queued for processing", task.AnalysisID)
		return true
	default:
		m.logger.Warning("Processing queue full - dropping analysis %s", task.AnalysisID)
		m.failAnalysis(task.AnalysisID)
		return false
	}
}

// QueueDepth returns the number of tasks waiting for a worker.
func (m *Manager) QueueDepth() int {
	return len(m.processingQueue)
}

// Stop closes the queue and waits for the workers to drain it.
func (m *Manager) Stop() {
	close(m.processingQueue)
	m.wg.Wait()
	m.logger.Info("All processing workers stopped")
}

func (m *Manager) processingWorker(workerID int) {
	defer m.wg.Done()

	m.logger.Info("Processing worker %d started", workerID)

	for task := range m.processingQueue {
		m.processAnalysis(task, workerID)
	}

	m.logger.Info("Processing worker %d stopped", workerID)
}

func (m *Manager) processAnalysis(task AnalysisTask, workerID int) {
	if err := m.repo.UpdateStatus(task.AnalysisID, model.StatusProcessing); err != nil {
		m.logger.Error("Error updating analysis %s: %v", task.AnalysisID, err)
		return
	}
	m.hubService.BroadcastEvent(websocket.Event{
		Type:       "analysis_started",
		AnalysisID: task.AnalysisID,
		Status:     model.StatusProcessing,
	})

	samples, err := m.detectors[workerID].DetectPanel(task.Image)
	if err != nil {
		m.logger.Error("Detection failed for analysis %s: %v", task.AnalysisID, err)
		m.failAnalysis(task.AnalysisID)
		return
	}

	annotatedPath := ""
	annotated, err := m.detectors[workerID].Annotate(task.Image, samples)
	if err != nil {
		// The findings are still valid without the overlay image.
		m.logger.Warning("Annotation failed for analysis %s: %v", task.AnalysisID, err)
	} else {
		annotatedPath, err = m.store.SaveAnnotated(task.AnalysisID, annotated)
		if err != nil {
			m.logger.Error("Error saving annotated image for %s: %v", task.AnalysisID, err)
			annotatedPath = ""
		}
	}

	if err := m.repo.Complete(task.AnalysisID, annotatedPath, samples); err != nil {
		m.logger.Error("Error completing analysis %s: %v", task.AnalysisID, err)
		m.failAnalysis(task.AnalysisID)
		return
	}

	m.logger.Info("Analysis %s done: %d sample(s)", task.AnalysisID, len(samples))
	m.hubService.BroadcastEvent(websocket.Event{
		Type:       "analysis_completed",
		AnalysisID: task.AnalysisID,
		Status:     model.StatusDone,
		Samples:    len(samples),
	})
}

func (m *Manager) failAnalysis(id string) {
	if err := m.repo.UpdateStatus(id, model.StatusFailed); err != nil {
		m.logger.Error("Error marking analysis %s failed: %v", id, err)
	}
	m.hubService.BroadcastEvent(websocket.Event{
		Type:       "analysis_failed",
		AnalysisID: id,
		Status:     model.StatusFailed,
	})
}
