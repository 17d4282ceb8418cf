// ABOUTME: Conversation turn orchestration
// ABOUTME: Builds the request, renders returned messages and hands audio to the pipeline
package processor

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/voiceturn/voiceturn-go/internal/client"
	"github.com/voiceturn/voiceturn-go/pkg/audio/pipeline"
)

// Sender sends a generation request; implemented by *client.Client
type Sender interface {
	Send(ctx context.Context, form client.Form) (*client.Response, error)
}

// AudioProcessor turns the audio field into a saved file; implemented by *pipeline.Pipeline
type AudioProcessor interface {
	Process(ctx context.Context, encoded string, play bool) (*pipeline.Result, error)
}

// Config holds the per-processor defaults
type Config struct {
	AppID    string // defaults to NewAppID()
	Language string
	TTSVoice string
	UseVoice bool
	Out      io.Writer // rendered messages; defaults to io.Discard
}

// Turn is one user request. Empty strings and a nil UseVoice fall back to
// the processor defaults.
type Turn struct {
	UserMessage      string
	AssistantMessage string
	Voice            string
	Language         string
	UseVoice         *bool
	PlayAudio        bool
}

// Outcome describes a completed turn
type Outcome struct {
	Response *client.Response
	NoAudio  bool
	Audio    *pipeline.Result
	AudioErr error
}

// Processor runs conversation turns
type Processor struct {
	config Config
	sender Sender
	audio  AudioProcessor
}

// NewAppID returns an anonymous application id
func NewAppID() string {
	return "anonymous_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// New creates a processor
func New(config Config, sender Sender, audio AudioProcessor) *Processor {
	if config.AppID == "" {
		config.AppID = NewAppID()
	}
	if config.Out == nil {
		config.Out = io.Discard
	}

	log.Printf("Processor initialized (app_id=%s, language=%s, voice=%s)",
		config.AppID, config.Language, config.TTSVoice)

	return &Processor{
		config: config,
		sender: sender,
		audio:  audio,
	}
}

// Generate sends a turn and processes the answer. Only request failures are
// returned as errors; audio failures are recorded on the outcome.
func (p *Processor) Generate(ctx context.Context, turn Turn) (*Outcome, error) {
	form := p.Form(turn)

	resp, err := p.sender.Send(ctx, form)
	if err != nil {
		log.Printf("No response data to process: %v", err)
		return nil, fmt.Errorf("generate failed: %w", err)
	}

	outcome := &Outcome{Response: resp}

	if err := p.render(resp.Messages); err != nil {
		return outcome, fmt.Errorf("failed to render messages: %w", err)
	}

	if resp.Audio == "" {
		log.Printf("No audio data found in the response.")
		outcome.NoAudio = true
		return outcome, nil
	}

	if p.audio == nil {
		log.Printf("Audio present but no audio processor configured.")
		return outcome, nil
	}

	result, err := p.audio.Process(ctx, resp.Audio, turn.PlayAudio)
	if err != nil {
		log.Printf("Audio processing failed: %v", err)
		outcome.AudioErr = err
		return outcome, nil
	}

	log.Printf("Audio processing completed. File saved at: %s", result.Path)
	outcome.Audio = result
	return outcome, nil
}

// Form builds the request fields for a turn
func (p *Processor) Form(turn Turn) client.Form {
	var messages []client.Message
	if turn.AssistantMessage != "" {
		messages = append(messages, client.Message{Role: "assistant", Content: turn.AssistantMessage})
	}
	messages = append(messages, client.Message{Role: "user", Content: turn.UserMessage})

	form := client.Form{
		AppID:    p.config.AppID,
		Language: p.config.Language,
		TTSVoice: p.config.TTSVoice,
		UseVoice: p.config.UseVoice,
		Messages: messages,
	}
	if turn.Language != "" {
		form.Language = turn.Language
	}
	if turn.Voice != "" {
		form.TTSVoice = turn.Voice
	}
	if turn.UseVoice != nil {
		form.UseVoice = *turn.UseVoice
	}
	return form
}

func (p *Processor) render(messages []client.Message) error {
	if len(messages) == 0 {
		log.Printf("No messages found in the response.")
		return nil
	}

	log.Printf("Extracted %d messages", len(messages))
	for _, m := range messages {
		if _, err := fmt.Fprintf(p.config.Out, "%s: %s\n", RoleLabel(m.Role), m.Content); err != nil {
			return err
		}
	}
	return nil
}

// RoleLabel capitalizes a role: first letter upper, rest lower.
// An empty role renders as "Unknown".
func RoleLabel(role string) string {
	if role == "" {
		return "Unknown"
	}
	r, size := utf8.DecodeRuneInString(role)
	return string(unicode.ToUpper(r)) + strings.ToLower(role[size:])
}
