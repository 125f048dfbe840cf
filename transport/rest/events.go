package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const eventSnapshot = "snapshot"

// events - streams the game events as server-sent events, starting with the current snapshot.
func (that *ultimateHandlers) events(w http.ResponseWriter, r *http.Request) {
	controller, ok := that.controller(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// the stream outlives the server write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		that.logger.Debug("could not clear write deadline", "error", err)
	}

	ctx := r.Context()
	events, unsubscribe := controller.Subscribe(ctx)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, eventSnapshot, controller.Snapshot()); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(that.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}

			if err := writeEvent(w, event.Kind, event); err != nil {
				that.logger.Debug("event stream closed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if _, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return fmt.Errorf("could not write event: %w", err)
	}

	return nil
}
