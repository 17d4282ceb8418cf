// ABOUTME: Entry point for the voiceturn client
// ABOUTME: Parses CLI flags, sends one conversational turn and saves the spoken answer
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voiceturn/voiceturn-go/internal/client"
	"github.com/voiceturn/voiceturn-go/internal/config"
	"github.com/voiceturn/voiceturn-go/internal/processor"
	"github.com/voiceturn/voiceturn-go/internal/ui"
	"github.com/voiceturn/voiceturn-go/internal/version"
	"github.com/voiceturn/voiceturn-go/pkg/audio/output"
	"github.com/voiceturn/voiceturn-go/pkg/audio/pipeline"
	"github.com/voiceturn/voiceturn-go/pkg/audio/playback"
	"github.com/voiceturn/voiceturn-go/pkg/audio/store"
)

var (
	message     = flag.String("message", "", "User message to send (required)")
	assistant   = flag.String("assistant", "", "Previous assistant message for context")
	voice       = flag.String("voice", "", "TTS voice override (default from VOICETURN_TTS_VOICE or nova)")
	language    = flag.String("language", "", "Language override (default from VOICETURN_LANGUAGE or en)")
	noVoice     = flag.Bool("no-voice", false, "Ask for a text-only answer")
	play        = flag.Bool("play", false, "Play the audio after saving it (default from VOICETURN_PLAY_AUDIO)")
	outputDir   = flag.String("output-dir", "", "Directory for saved audio (default from VOICETURN_OUTPUT_DIR or output)")
	envFile     = flag.String("env-file", ".env", "Environment file to load")
	logFile     = flag.String("log-file", "voiceturn.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	timeout     = flag.Duration("timeout", 2*time.Minute, "Overall timeout for the turn")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if strings.TrimSpace(*message) == "" {
		fmt.Fprintln(os.Stderr, "-message is required")
		flag.Usage()
		os.Exit(2)
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlags(&cfg)

	if cfg.APIKey == "" {
		log.Printf("Warning: %s is not set, sending request without credentials", config.EnvAPIKey)
	}

	svc, err := newServices(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer func() { _ = svc.player.Close() }()

	// TUI setup
	var tuiProg *tea.Program
	var volumeCtrl *ui.VolumeControl
	tuiDone := make(chan struct{})

	if useTUI {
		volumeCtrl = ui.NewVolumeControl()
		tuiProg = ui.Run(volumeCtrl)
		go func() {
			defer close(tuiDone)
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
	}

	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if volumeCtrl != nil {
		go func() {
			<-volumeCtrl.Quit
			log.Printf("Received quit signal from TUI")
			stop()
		}()
	}

	if volumeCtrl != nil {
		go handleVolumeControl(ctx, svc.device, volumeCtrl)
	}

	var rendered bytes.Buffer
	var out io.Writer = os.Stdout
	if useTUI {
		out = &rendered
	}

	proc := processor.New(
		processor.Config{
			Language: cfg.Language,
			TTSVoice: cfg.TTSVoice,
			UseVoice: cfg.UseVoice,
			Out:      out,
		},
		stageSender{sender: svc.api, update: updateTUI},
		pipeline.New(svc.clips, stagePlayer{player: svc.player, update: updateTUI}),
	)

	turn := processor.Turn{
		UserMessage:      *message,
		AssistantMessage: *assistant,
		PlayAudio:        cfg.PlayAudio,
	}
	form := proc.Form(turn)
	updateTUI(ui.StatusMsg{Request: *message, Voice: form.TTSVoice, Language: form.Language})

	turnCtx, cancel := context.WithTimeout(ctx, *timeout)
	outcome, err := proc.Generate(turnCtx, turn)
	cancel()

	failed := err != nil
	updateTUI(outcomeStatus(outcome, err, &rendered))

	if err != nil {
		log.Printf("Processing failed: %v", err)
	} else {
		log.Printf("Processing completed successfully.")
	}

	if tuiProg != nil {
		// Keep the result on screen until the user quits
		select {
		case <-ctx.Done():
			tuiProg.Quit()
		case <-tuiDone:
		}
		<-tuiDone
	}

	if failed {
		_ = svc.player.Close()
		_ = f.Close()
		os.Exit(1)
	}
}

// services are the collaborators of a turn, built before the TUI takes the terminal
type services struct {
	clips  *store.Store
	device *output.Oto
	player *playback.Player
	api    *client.Client
}

func newServices(cfg config.Config) (*services, error) {
	clips, err := store.New(store.Config{Dir: cfg.OutputDir})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}

	device := output.NewOto()
	return &services{
		clips:  clips,
		device: device,
		player: playback.New(playback.Config{Output: device}),
		api: client.New(client.Config{
			URL:           cfg.APIURL,
			Authorization: cfg.Authorization(),
		}),
	}, nil
}

// applyFlags overrides configuration values with flags set on the command line
func applyFlags(cfg *config.Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "voice":
			cfg.TTSVoice = *voice
		case "language":
			cfg.Language = *language
		case "no-voice":
			cfg.UseVoice = !*noVoice
		case "play":
			cfg.PlayAudio = *play
		case "output-dir":
			cfg.OutputDir = *outputDir
		}
	})
}

// outcomeStatus summarizes a finished turn for the TUI
func outcomeStatus(outcome *processor.Outcome, err error, rendered *bytes.Buffer) ui.StatusMsg {
	msg := ui.StatusMsg{}
	if rendered.Len() > 0 {
		msg.Messages = strings.Split(strings.TrimRight(rendered.String(), "\n"), "\n")
	}

	stage := ui.StageDone
	if err != nil {
		stage = ui.StageFailed
		msg.Err = err.Error()

		var se *client.StatusError
		if errors.As(err, &se) && se.Body != "" {
			msg.Note = "server said: " + se.Body
		}
	}
	msg.Stage = &stage

	if outcome == nil {
		return msg
	}

	switch {
	case outcome.NoAudio:
		msg.Note = "no audio in the response"
	case outcome.AudioErr != nil:
		msg.Err = "audio: " + outcome.AudioErr.Error()
	case outcome.Audio != nil:
		msg.AudioPath = outcome.Audio.Path
		msg.AudioFormat = outcome.Audio.Format.String()
		msg.Converted = outcome.Audio.Converted
		if outcome.Audio.PlaybackErr != nil {
			msg.Note = "playback: " + outcome.Audio.PlaybackErr.Error()
		}
	}
	return msg
}

// stageSender reports the sending stage before each request
type stageSender struct {
	sender processor.Sender
	update func(ui.StatusMsg)
}

func (s stageSender) Send(ctx context.Context, form client.Form) (*client.Response, error) {
	s.update(ui.StageStatus(ui.StageSending))
	resp, err := s.sender.Send(ctx, form)
	if err == nil && resp.Audio != "" {
		s.update(ui.StageStatus(ui.StageAudio))
	}
	return resp, err
}

// stagePlayer reports the playing stage before rendering a clip
type stagePlayer struct {
	player pipeline.Player
	update func(ui.StatusMsg)
}

func (p stagePlayer) Play(ctx context.Context, path string) error {
	p.update(ui.StageStatus(ui.StagePlaying))
	return p.player.Play(ctx, path)
}

// handleVolumeControl processes volume changes from TUI
func handleVolumeControl(ctx context.Context, device *output.Oto, volumeCtrl *ui.VolumeControl) {
	for {
		select {
		case vol := <-volumeCtrl.Changes:
			log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			device.SetVolume(vol.Volume)
			device.SetMuted(vol.Muted)
		case <-ctx.Done():
			return
		}
	}
}
