package repository

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// SessionLogEntry is one completed (or failed) user action.
type SessionLogEntry struct {
	Action string
	Ticker string
	Start  time.Time
	End    time.Time
	Rows   int
	Status string
	Note   string
}

// SessionLogRepository appends one row per action to the session log.
type SessionLogRepository interface {
	Append(entry SessionLogEntry) error
}

type sessionRow struct {
	Timestamp string `csv:"timestamp"`
	Action    string `csv:"action"`
	Ticker    string `csv:"ticker"`
	Start     string `csv:"start"`
	End       string `csv:"end"`
	Rows      int    `csv:"rows"`
	Status    string `csv:"status"`
	Note      string `csv:"note"`
}

func NewSessionLogRepository(path string) SessionLogRepository {
	return &sessionLogRepositoryHandler{Path: path}
}

type sessionLogRepositoryHandler struct {
	Path string
}

func (h *sessionLogRepositoryHandler) Append(entry SessionLogEntry) error {
	f, err := os.OpenFile(h.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat session log: %w", err)
	}

	rows := []*sessionRow{{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    entry.Action,
		Ticker:    entry.Ticker,
		Start:     entry.Start.Format(time.DateOnly),
		End:       entry.End.Format(time.DateOnly),
		Rows:      entry.Rows,
		Status:    entry.Status,
		Note:      entry.Note,
	}}

	if info.Size() == 0 {
		err = gocsv.Marshal(&rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, f)
	}
	if err != nil {
		return fmt.Errorf("failed to append session log: %w", err)
	}
	return nil
}
