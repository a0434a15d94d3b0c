package model

import (
	"os"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// EventType discriminates logged simulation events.
type EventType string

const (
	// EventTransmission records one (source, target) belief transmission.
	EventTransmission EventType = "Transmission"
	// EventRoundStats records aggregate counts at a round boundary.
	EventRoundStats EventType = "RoundStats"
)

// EventRecord is a single logged simulation event.
type EventRecord struct {
	Type  EventType `msgpack:"type"`
	Round int       `msgpack:"round"`
	Body  any       `msgpack:"body"`
}

// RoundStatsBody is the payload of an EventRoundStats record.
type RoundStatsBody struct {
	ABMBelievers int     `msgpack:"abm_believers"`
	PBMBelievers float64 `msgpack:"pbm_believers"`
	Intervention bool    `msgpack:"intervention"`
}

// EventLogger appends msgpack-encoded events to a file from a background
// worker so the round loop never blocks on disk.
type EventLogger struct {
	Filename  string
	BatchSize int
	queue     chan *EventRecord
	stopFlag  chan struct{}
	wg        sync.WaitGroup
	lock      sync.Mutex
	file      *os.File
}

// NewEventLogger creates a new event logger appending to filename.
func NewEventLogger(filename string, batchSize int) (*EventLogger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	logger := &EventLogger{
		Filename:  filename,
		BatchSize: batchSize,
		queue:     make(chan *EventRecord, batchSize*2),
		stopFlag:  make(chan struct{}),
		file:      file,
	}

	logger.wg.Add(1)
	go logger.worker()

	return logger, nil
}

// LogEvent queues an event for writing. Events arriving after Stop are
// discarded.
func (l *EventLogger) LogEvent(event *EventRecord) {
	select {
	case l.queue <- event:
	case <-l.stopFlag:
	}
}

func (l *EventLogger) worker() {
	defer l.wg.Done()

	batch := make([]*EventRecord, 0, l.BatchSize)

	for {
		select {
		case event := <-l.queue:
			batch = append(batch, event)
			if len(batch) >= l.BatchSize {
				l.writeBatch(batch)
				batch = make([]*EventRecord, 0, l.BatchSize)
			}

		case <-l.stopFlag:
			// drain whatever is still queued, then flush
			for {
				select {
				case event := <-l.queue:
					batch = append(batch, event)
					continue
				default:
				}
				break
			}
			if len(batch) > 0 {
				l.writeBatch(batch)
			}
			return
		}
	}
}

func (l *EventLogger) writeBatch(batch []*EventRecord) {
	l.lock.Lock()
	defer l.lock.Unlock()

	for _, event := range batch {
		data, err := msgpack.Marshal(event)
		if err != nil {
			continue
		}
		l.file.Write(data)
	}

	l.file.Sync()
}

// Stop flushes pending events and closes the file.
func (l *EventLogger) Stop() {
	close(l.stopFlag)
	l.wg.Wait()

	l.lock.Lock()
	defer l.lock.Unlock()
	l.file.Close()
}

// ReadEventRecords reads back every event written to a log file.
func ReadEventRecords(filename string) ([]*EventRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []*EventRecord
	decoder := msgpack.NewDecoder(file)

	for {
		var rec EventRecord
		if err := decoder.Decode(&rec); err != nil {
			break
		}
		records = append(records, &rec)
	}

	return records, nil
}
