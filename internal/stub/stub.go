// ABOUTME: Local stand-in for the speech/text generation endpoint
// ABOUTME: Accepts the multipart form and answers with messages plus base64 audio
package stub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Path is the route the stub serves
const Path = "/web-chat/audio/audio_generate"

// maxFormMemory bounds multipart parsing
const maxFormMemory = 1 << 20

// Config holds stub configuration
type Config struct {
	Port int

	// Clip is returned base64 encoded as the audio field; empty omits audio
	Clip []byte

	// StripPadding removes trailing "=" from the audio field
	StripPadding bool

	// Reply is the assistant text (default: echoes the last user message)
	Reply string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type response struct {
	Messages []message `json:"messages"`
	Audio    string    `json:"audio,omitempty"`
}

// Server serves the stub endpoint
type Server struct {
	config     Config
	httpServer *http.Server
	mux        *http.ServeMux

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a stub server
func New(config Config) *Server {
	s := &Server{
		config:   config,
		mux:      http.NewServeMux(),
		stopChan: make(chan struct{}),
	}
	s.mux.HandleFunc(Path, s.handleGenerate)
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until Stop is called or the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Stub endpoint listening on http://localhost%s%s", addr, Path)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-s.stopChan:
		log.Printf("Stub shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		serverErr = err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if serverErr != nil {
		return fmt.Errorf("HTTP server failed: %w", serverErr)
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		http.Error(w, "expected multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	appID := r.FormValue("app_id")
	if appID == "" {
		http.Error(w, "app_id is required", http.StatusBadRequest)
		return
	}

	var history []message
	if err := json.Unmarshal([]byte(r.FormValue("messages")), &history); err != nil {
		http.Error(w, "messages must be a JSON array", http.StatusBadRequest)
		return
	}
	if len(history) == 0 {
		http.Error(w, "messages must not be empty", http.StatusBadRequest)
		return
	}

	useVoice, err := strconv.ParseBool(r.FormValue("voice"))
	if err != nil {
		http.Error(w, "voice must be true or false", http.StatusBadRequest)
		return
	}

	log.Printf("Request from %s: %d messages, language=%s, tts_voice=%s, voice=%v",
		appID, len(history), r.FormValue("language"), r.FormValue("tts_voice"), useVoice)

	resp := response{
		Messages: append(history, message{Role: "assistant", Content: s.reply(history)}),
	}
	if useVoice && len(s.config.Clip) > 0 {
		resp.Audio = base64.StdEncoding.EncodeToString(s.config.Clip)
		if s.config.StripPadding {
			resp.Audio = strings.TrimRight(resp.Audio, "=")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func (s *Server) reply(history []message) string {
	if s.config.Reply != "" {
		return s.config.Reply
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return "You said: " + history[i].Content
		}
	}
	return "Hello!"
}
