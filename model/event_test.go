package model

import (
	"path/filepath"
	"testing"
)

// Test case for the event log write/read roundtrip
func TestEventLoggerRoundtrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "events.msgpack")

	logger, err := NewEventLogger(filename, 4)
	if err != nil {
		t.Fatalf("Failed to create event logger: %v", err)
	}

	for round := 0; round < 10; round++ {
		logger.LogEvent(&EventRecord{
			Type:  EventTransmission,
			Round: round,
			Body:  TransmissionRecord{Source: round, Target: round + 1},
		})
	}
	logger.LogEvent(&EventRecord{
		Type:  EventRoundStats,
		Round: 10,
		Body:  RoundStatsBody{ABMBelievers: 4, PBMBelievers: 3.5, Intervention: false},
	})
	logger.Stop()

	records, err := ReadEventRecords(filename)
	if err != nil {
		t.Fatalf("Failed to read events back: %v", err)
	}
	if len(records) != 11 {
		t.Fatalf("Expected 11 records, got %d", len(records))
	}

	for i := 0; i < 10; i++ {
		if records[i].Type != EventTransmission || records[i].Round != i {
			t.Errorf("Record %d: expected transmission at round %d, got %s at %d",
				i, i, records[i].Type, records[i].Round)
		}
	}
	if records[10].Type != EventRoundStats || records[10].Round != 10 {
		t.Errorf("Expected round stats record last, got %s at %d", records[10].Type, records[10].Round)
	}
}

// Test case for events logged after Stop being dropped without blocking
func TestEventLoggerStopDiscards(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "events.msgpack")

	logger, err := NewEventLogger(filename, 4)
	if err != nil {
		t.Fatalf("Failed to create event logger: %v", err)
	}
	logger.LogEvent(&EventRecord{Type: EventTransmission, Round: 0, Body: TransmissionRecord{Source: 0, Target: 1}})
	logger.Stop()

	// must not block or panic
	logger.LogEvent(&EventRecord{Type: EventTransmission, Round: 1, Body: TransmissionRecord{Source: 1, Target: 2}})

	records, err := ReadEventRecords(filename)
	if err != nil {
		t.Fatalf("Failed to read events back: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}
}
