package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seekscript/seekscript/log"
)

// Observed mpv properties.
const (
	PropTimePos    = "time-pos"
	PropDuration   = "duration"
	PropCacheTime  = "demuxer-cache-time"
	PropPause      = "pause"
	PropEOFReached = "eof-reached"
)

// observed lists the properties a listener subscribes to, in observer id order.
var observed = []string{PropTimePos, PropDuration, PropCacheTime, PropPause, PropEOFReached}

// Event is a property change or a plain mpv event such as "end-file".
type Event struct {
	Name string
	Data interface{}
}

// Float returns the event value as seconds. mpv reports unavailable
// properties as null, which yields none.
func (e Event) Float() mo.Option[float64] {
	if v, ok := e.Data.(float64); ok {
		return mo.Some(v)
	}
	return mo.None[float64]()
}

// Bool returns the event value as a flag, false when it is not one.
func (e Event) Bool() bool {
	v, _ := e.Data.(bool)
	return v
}

// EventCallback is the function signature for mpv event notifications.
// It runs on the listener goroutine.
type EventCallback func(Event)

// EventListener provides real-time mpv event monitoring via observe_property.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	done       chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start connects to mpv, subscribes to the observed properties and starts the
// read loop. mpv delivers property changes only to the connection that asked
// for them, so the subscription and the loop share one connection.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, []interface{}{"observe_property", i + 1, name}, i+1); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Infof("mpv event listener started on %s (observing: %s)", el.socketPath, strings.Join(observed, ", "))
	return nil
}

// Stop terminates the event listener.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// Done is closed once the read loop has exited, either after Stop or because
// mpv went away.
func (el *EventListener) Done() <-chan struct{} {
	return el.done
}

// readLoop continuously reads events from the persistent mpv connection.
// mpv sends newline-delimited JSON events when observed properties change.
func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
		close(el.done)
	}()

	buf := make([]byte, 4096)
	var remainder []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := el.conn.Read(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		data := append(remainder, buf[:n]...)
		lines := strings.Split(string(data), "\n")

		// The last element is an incomplete line, or empty after a trailing newline.
		remainder = []byte(lines[len(lines)-1])
		for _, line := range lo.Compact(lo.Map(lines[:len(lines)-1], func(l string, _ int) string {
			return strings.TrimSpace(l)
		})) {
			el.processEvent(line)
		}
	}
}

// processEvent parses and dispatches a single mpv event JSON line.
func (el *EventListener) processEvent(line string) {
	var resp ipcResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		log.Debugf("skipping mpv line %q: %v", line, err)
		return
	}

	if el.callback == nil {
		return
	}

	switch resp.Event {
	case "":
		// Reply to one of our observe_property requests.
		if resp.Error != "" && resp.Error != "success" {
			log.Warnf("mpv observe request %d: %s", resp.RequestID, resp.Error)
		}
	case "property-change":
		var change struct {
			Name string      `json:"name"`
			Data interface{} `json:"data"`
		}
		if err := json.Unmarshal([]byte(line), &change); err != nil || change.Name == "" {
			return
		}
		el.callback(Event{Name: change.Name, Data: change.Data})
	default:
		el.callback(Event{Name: resp.Event})
	}
}
