package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyJobsUpdated tells connected widgets that an ingest run refreshed the
// job corpus. No-op when no hub is wired, so ingest can run standalone.
func NotifyJobsUpdated(source string, count int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" || count <= 0 {
		return
	}

	evt := JobsUpdatedEvent{
		Type:      "jobs_updated",
		Source:    source,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
