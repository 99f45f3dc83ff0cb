// Storyteller runs the full interactive performance: opening script, one
// Dialogflow CX flow per chapter with audience word collection, narrated
// story beats with gesture and LED expression, closing script.
//
// Speech-to-text is an external collaborator; by default utterances are
// read line-by-line from stdin (an operator relays what the audience
// says, or a separate STT pipeline is piped in).
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/teslashibe/go-nao-story/internal/config"
	"github.com/teslashibe/go-nao-story/internal/log"
	"github.com/teslashibe/go-nao-story/pkg/dialogflow"
	"github.com/teslashibe/go-nao-story/pkg/director"
	"github.com/teslashibe/go-nao-story/pkg/nao"
	"github.com/teslashibe/go-nao-story/pkg/performance"
	"github.com/teslashibe/go-nao-story/pkg/stage"
	"github.com/teslashibe/go-nao-story/pkg/tts"
)

func main() {
	godotenv.Load()

	robotIP := flag.String("robot-ip", "", "NAO bridge IP (overrides NAO_IP env var)")
	voice := flag.String("voice", "bm_lewis", "Kokoro narrator voice")
	noStage := flag.Bool("no-stage", false, "Disable the stage monitor server")
	skipScripts := flag.Bool("skip-scripts", false, "Skip the scripted opening and closing")
	logLevel := flag.String("log-level", os.Getenv("LOG_LEVEL"), "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	ip := config.NaoIP(*robotIP)
	if ip == "" {
		fmt.Fprintln(os.Stderr, "Error: robot IP required (NAO_IP env var or -robot-ip flag)")
		os.Exit(1)
	}

	keyfile, err := os.ReadFile(config.KeyfilePath())
	if err != nil {
		log.Error("failed to read service-account keyfile", "path", config.KeyfilePath(), "error", err)
		os.Exit(1)
	}

	engine, err := dialogflow.New(keyfile, config.AgentID(), config.Location("europe-west4"),
		dialogflow.WithLanguage(config.Language()),
		dialogflow.WithLogger(log.Component("dialogflow")),
	)
	if err != nil {
		log.Error("failed to create dialogue engine", "error", err)
		os.Exit(1)
	}

	bridge := nao.NewHTTPBridge(ip)
	eyes := nao.NewEyeAnimator(bridge)
	narrator := tts.NewKokoro(
		tts.WithBaseURL(config.TTSURL()),
		tts.WithVoice(*voice),
		tts.WithLogger(log.Component("tts")),
	)

	synchronizer := performance.NewSynchronizer(
		&performance.GestureChannel{Ctrl: bridge},
		&performance.LEDChannel{Eyes: eyes},
		&performance.SpeechChannel{TTS: narrator, Ctrl: bridge},
		performance.WithLogger(log.Component("performance")),
	)

	var sink director.EventSink = director.NopSink{}
	if !*noStage {
		monitor := stage.NewServer(config.StagePort(), log.L())
		monitor.StartAsync()
		defer monitor.Shutdown()
		sink = monitor
	}

	d, err := director.New(director.Config{
		Engine:      engine,
		Flows:       config.Flows(),
		Performer:   synchronizer,
		Transcriber: &stdinTranscriber{r: bufio.NewReader(os.Stdin)},
		Speaker:     bridge,
		Sink:        sink,
		SkipScripts: *skipScripts,
		Logger:      log.L(),
	})
	if err != nil {
		log.Error("failed to create director", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := bridge.WakeUp(ctx); err != nil {
		log.Warn("wake up failed, continuing", "error", err)
	}
	defer func() {
		rest := context.Background()
		eyes.Reset(rest)
		bridge.Rest(rest)
	}()

	if err := d.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("show interrupted")
			return
		}
		log.Error("show failed", "error", err)
		os.Exit(1)
	}
	log.Info("show finished")
}

// stdinTranscriber reads one utterance per line.
type stdinTranscriber struct {
	r *bufio.Reader
}

func (s *stdinTranscriber) Listen(ctx context.Context) (string, error) {
	fmt.Print("> ")
	type lineResult struct {
		text string
		err  error
	}
	ch := make(chan lineResult, 1)
	go func() {
		text, err := s.r.ReadString('\n')
		ch <- lineResult{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if errors.Is(res.err, io.EOF) {
			// Input closed: end the show instead of waiting forever.
			return "stop", nil
		}
		return res.text, res.err
	}
}
