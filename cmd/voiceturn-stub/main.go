// ABOUTME: Entry point for the local stub endpoint
// ABOUTME: Serves canned answers with audio for trying the client offline
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/voiceturn/voiceturn-go/internal/stub"
	"github.com/voiceturn/voiceturn-go/pkg/audio/sniff"
)

var (
	port         = flag.Int("port", 8931, "HTTP port")
	audioFile    = flag.String("audio", "", "Audio file to return (any format). If not specified, returns a test tone")
	toneSeconds  = flag.Float64("tone-seconds", 1.5, "Length of the test tone")
	stripPadding = flag.Bool("strip-padding", true, "Strip base64 padding from the audio field")
	reply        = flag.String("reply", "", "Assistant reply text (default: echo the user)")
	logFile      = flag.String("log-file", "voiceturn-stub.log", "Log file path")
)

func main() {
	flag.Parse()

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	log.SetOutput(io.MultiWriter(os.Stdout, f))

	var clip []byte
	if *audioFile != "" {
		clip, err = os.ReadFile(*audioFile)
		if err != nil {
			log.Fatalf("Failed to read audio file: %v", err)
		}
	} else {
		clip, err = stub.ToneWAV(*toneSeconds)
		if err != nil {
			log.Fatalf("Failed to render test tone: %v", err)
		}
	}
	log.Printf("Serving %d byte clip (sniffed as %s)", len(clip), sniff.Detect(clip))

	srv := stub.New(stub.Config{
		Port:         *port,
		Clip:         clip,
		StripPadding: *stripPadding,
		Reply:        *reply,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Shutdown signal received")
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Stub error: %v", err)
	}
}
