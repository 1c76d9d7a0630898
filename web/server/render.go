package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const writeTimeout = 10 * time.Second

// Message is a single WebSocket frame sent to the client. Exactly one of the
// payload fields is set, matching Type.
type Message struct {
	Type     string          `json:"type"` // "console", "progress", "complete", "error"
	Console  *ConsoleMessage `json:"console,omitempty"`
	Progress *Progress       `json:"progress,omitempty"`
	Complete *Complete       `json:"complete,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Progress reports a finished scanline
type Progress struct {
	Row           int   `json:"row"`
	RowsCompleted int   `json:"rowsCompleted"`
	TotalRows     int   `json:"totalRows"`
	ElapsedMs     int64 `json:"elapsedMs"`
}

// Complete carries the finished image
type Complete struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Workers          int     `json:"workers"`
}

// handleRender upgrades to a WebSocket and streams a render of the requested scene
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends anything meaningful; a read error means it went away
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	events := make(chan Message, 64)
	consoleChan := make(chan ConsoleMessage, 64)
	writerDone := make(chan struct{})
	go s.writeMessages(conn, cancel, events, consoleChan, writerDone)

	s.streamRender(ctx, r, renderID, events, consoleChan)

	close(events)
	<-writerDone

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
}

// streamRender builds and renders the scene, publishing messages to events
func (s *Server) streamRender(ctx context.Context, r *http.Request, renderID string, events chan<- Message, consoleChan chan<- ConsoleMessage) {
	send := func(msg Message) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}

	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		send(Message{Type: "error", Error: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	logger := NewWebLogger(renderID, consoleChan)
	sc, err := scene.Build(req.Scene, req.Seed, logger)
	if err != nil {
		send(Message{Type: "error", Error: err.Error()})
		return
	}

	config := sc.Camera
	config.Width = req.Width
	config.SamplesPerPixel = req.SPP
	config.MaxDepth = req.Depth

	options := renderer.DefaultOptions()
	options.Seed = req.Seed
	rt := renderer.NewRaytracer(sc.World, sc.Lights, config, options, renderer.NewDiscardLogger())

	width, height := rt.Camera().Width(), rt.Camera().Height()
	if width*height > 800*600 && req.SPP > 100 {
		logger.Printf("Warning: large image with high samples may render slowly\n")
	}
	logger.Printf("Rendering %s at %dx%d, %d spp, depth %d\n", sc.Name, width, height, rt.Camera().SamplesPerPixel(), req.Depth)

	startTime := time.Now()
	fb, stats, err := rt.Render(ctx, func(p renderer.RowProgress) {
		send(Message{Type: "progress", Progress: &Progress{
			Row:           p.Row,
			RowsCompleted: p.RowsCompleted,
			TotalRows:     p.TotalRows,
			ElapsedMs:     time.Since(startTime).Milliseconds(),
		}})
	})
	if err != nil {
		log.Printf("[%s] render stopped: %v", renderID, err)
		send(Message{Type: "error", Error: fmt.Sprintf("Render error: %v", err)})
		return
	}
	logger.Printf("Render completed: %s\n", stats)

	imageData, err := bufferToBase64PNG(fb.ColorBuffer())
	if err != nil {
		send(Message{Type: "error", Error: fmt.Sprintf("failed to encode image: %v", err)})
		return
	}

	send(Message{Type: "complete", Complete: &Complete{
		Width:     width,
		Height:    height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      stats.TotalPixels(),
			TotalSamples:     stats.TotalSamples,
			SamplesPerPixel:  stats.SamplesPerPixel,
			SamplesPerSecond: stats.SamplesPerSecond(),
			Workers:          stats.Workers,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}})
}

// writeMessages is the only goroutine writing data frames to conn. It drains
// events until the channel is closed, interleaving console lines as they
// arrive. A failed write cancels the render and discards further messages.
func (s *Server) writeMessages(conn *websocket.Conn, cancel context.CancelFunc, events <-chan Message, console <-chan ConsoleMessage, done chan<- struct{}) {
	defer close(done)

	failed := false
	write := func(msg Message) {
		if failed {
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("websocket write: %v", err)
			failed = true
			cancel()
		}
	}
	flushConsole := func() {
		for {
			select {
			case c := <-console:
				write(Message{Type: "console", Console: &c})
			default:
				return
			}
		}
	}

	for {
		select {
		case msg, ok := <-events:
			flushConsole()
			if !ok {
				return
			}
			write(msg)
		case c := <-console:
			write(Message{Type: "console", Console: &c})
		}
	}
}

// bufferToBase64PNG encodes a color buffer as base64 PNG
func bufferToBase64PNG(buf *output.Buffer) (string, error) {
	var b bytes.Buffer
	if err := output.WritePNG(&b, buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}
