package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"chatshell/internal/models"
	"chatshell/internal/repositories"
)

// PrefsRecordKey is the record name the preferences are stored under.
const PrefsRecordKey = "prefs"

const saveTimeout = 5 * time.Second

// ErrStoreClosed is reported for saves submitted after Close.
var ErrStoreClosed = errors.New("preference store is closed")

// SaveOptions lets callers that are about to terminate tie the process
// exit to the outcome of the write.
type SaveOptions struct {
	ExitOnFail    bool
	ExitOnSuccess bool
}

// QuitHandler is called when a save asks for the process to end. cause is
// nil when the exit follows a successful write.
type QuitHandler func(cause error)

type saveRequest struct {
	prefs  models.Preferences
	opts   SaveOptions
	result chan error
}

// PreferenceService owns the in-memory preferences and persists them
// through a single writer goroutine, so writes land in submission order.
type PreferenceService struct {
	records repositories.RecordRepository
	log     logger.Logger

	mu    sync.Mutex
	prefs models.Preferences
	quit  QuitHandler

	queueMu sync.Mutex
	closed  bool
	queue   chan saveRequest
	done    chan struct{}
}

func NewPreferenceService(records repositories.RecordRepository, log logger.Logger) *PreferenceService {
	s := &PreferenceService{
		records: records,
		log:     log,
		queue:   make(chan saveRequest, 32),
		done:    make(chan struct{}),
	}
	go s.writer()
	return s
}

// SetQuitHandler installs the function used by ExitOnFail/ExitOnSuccess.
func (s *PreferenceService) SetQuitHandler(h QuitHandler) {
	s.mu.Lock()
	s.quit = h
	s.mu.Unlock()
}

// Load reads the stored preferences. It never fails: read and decode
// errors are logged and an empty record is used instead.
func (s *PreferenceService) Load(ctx context.Context) models.Preferences {
	var prefs models.Preferences

	data, err := s.records.Get(ctx, PrefsRecordKey)
	switch {
	case errors.Is(err, repositories.ErrRecordNotFound):
	case err != nil:
		s.log.Error(fmt.Sprintf("Could not load preferences from storage: %v", err))
	default:
		if err := json.Unmarshal(data, &prefs); err != nil {
			s.log.Error(fmt.Sprintf("Could not decode stored preferences: %v", err))
			prefs = models.Preferences{}
		}
	}

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	return prefs.Clone()
}

// Current returns a snapshot of the in-memory preferences.
func (s *PreferenceService) Current() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// Update mutates the in-memory preferences and returns the new snapshot.
// Nothing is written.
func (s *PreferenceService) Update(fn func(p *models.Preferences)) models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.prefs)
	return s.prefs.Clone()
}

// Commit is Update followed by Save of the resulting snapshot.
func (s *PreferenceService) Commit(fn func(p *models.Preferences), opts SaveOptions) (models.Preferences, <-chan error) {
	snapshot := s.Update(fn)
	return snapshot, s.Save(snapshot, opts)
}

// Save queues prefs for writing and returns immediately. The returned
// channel receives the outcome once; callers are free to ignore it.
func (s *PreferenceService) Save(prefs models.Preferences, opts SaveOptions) <-chan error {
	result := make(chan error, 1)

	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	if s.closed {
		result <- ErrStoreClosed
		return result
	}
	s.queue <- saveRequest{prefs: prefs.Clone(), opts: opts, result: result}
	return result
}

// Close stops accepting saves and waits for queued writes to land.
func (s *PreferenceService) Close() {
	s.queueMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.queueMu.Unlock()
	<-s.done
}

func (s *PreferenceService) writer() {
	defer close(s.done)
	for req := range s.queue {
		err := s.write(req.prefs)
		req.result <- err

		if err != nil {
			s.log.Error(fmt.Sprintf("Couldn't save preferences due to storage error: %v", err))
			if req.opts.ExitOnFail {
				s.requestQuit(err)
			}
			continue
		}
		if req.opts.ExitOnSuccess {
			s.requestQuit(nil)
		}
	}
}

func (s *PreferenceService) write(prefs models.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.records.Put(ctx, PrefsRecordKey, data); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func (s *PreferenceService) requestQuit(cause error) {
	s.mu.Lock()
	quit := s.quit
	s.mu.Unlock()
	if quit == nil {
		s.log.Warning("Preference save requested exit but no quit handler is installed")
		return
	}
	// The handler may tear the store down, which waits on this goroutine.
	go quit(cause)
}
