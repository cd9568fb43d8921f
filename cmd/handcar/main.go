// handcar serves the voice-controlled car and hands demo.
//
// It relays browser WebRTC offers to the realtime voice API, exposes the demo
// actions over HTTP, streams state to renderers and runs the animation tick.
// With -connect or -ws it also drives the session headlessly.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/teslashibe/go-handcar/internal/config"
	"github.com/teslashibe/go-handcar/internal/log"
	"github.com/teslashibe/go-handcar/pkg/actions"
	"github.com/teslashibe/go-handcar/pkg/car"
	"github.com/teslashibe/go-handcar/pkg/hub"
	"github.com/teslashibe/go-handcar/pkg/realtime"
	"github.com/teslashibe/go-handcar/pkg/session"
	"github.com/teslashibe/go-handcar/pkg/signaling"
	"github.com/teslashibe/go-handcar/pkg/web"
)

// flags holds options that only exist on the command line.
type flags struct {
	connect   string
	stun      string
	websocket bool
	say       string
	accessLog bool
}

func main() {
	_ = godotenv.Load()
	cfg, fl := parseFlags()

	log.Init(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, fl); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags on top of the environment configuration.
func parseFlags() (config.Config, flags) {
	cfg := config.Load()
	var fl flags

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	flag.DurationVar(&cfg.Tick, "tick", cfg.Tick, "Animation tick interval")
	flag.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Directory served at /")
	flag.StringVar(&fl.connect, "connect", "", "Relay URL; run a headless WebRTC peer against it")
	flag.StringVar(&fl.stun, "stun", "stun:stun.l.google.com:19302", "STUN server for the headless peer")
	flag.BoolVar(&fl.websocket, "ws", false, "Drive the session over the realtime websocket")
	flag.StringVar(&fl.say, "say", "", "Text prompt to send once the websocket session is up")
	flag.BoolVar(&fl.accessLog, "access-log", false, "Log every HTTP request")
	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}
	return cfg, fl
}

func run(ctx context.Context, cfg config.Config, fl flags) error {
	states := hub.New("state")
	go states.Run(ctx)

	sess := session.New(session.Options{
		Bounds: car.Bounds{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight},
		Tick:   cfg.Tick,
		Observer: session.ObserverFunc(func(s session.Snapshot) {
			if err := states.BroadcastJSON(s); err != nil {
				log.Warn("broadcast state", "error", err)
			}
		}),
	})
	log.Info("session created", "session", sess.ID(), "actions", len(actions.All()))

	var upstream signaling.Negotiator
	if cfg.OpenAIKey != "" {
		upstream = &signaling.HTTPNegotiator{URL: cfg.UpstreamURL(), Token: cfg.OpenAIKey}
	} else {
		log.Warn("OPENAI_API_KEY not set, relay endpoint disabled")
	}

	srv := web.NewServer(web.Options{
		Port:       cfg.Port,
		StaticDir:  cfg.StaticDir,
		RelayPath:  cfg.RelayPath,
		Session:    sess,
		States:     states,
		Negotiator: upstream,
		AccessLog:  fl.accessLog,
	})
	srv.StartAsync()

	go func() {
		if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("animation loop", "error", err)
		}
	}()

	handler := realtime.NewHandler(sess, realtime.Config{
		Instructions: cfg.Instructions,
		Voice:        cfg.Voice,
	})
	handler.OnCall = func(name string, result actions.Result) {
		log.Info("assistant action", "name", name, "success", result.Success())
	}

	var peer *realtime.Peer
	switch {
	case fl.connect != "":
		var stun []string
		if fl.stun != "" {
			stun = append(stun, fl.stun)
		}
		peer = realtime.NewPeer(handler, signaling.NewHTTPNegotiator(fl.connect), stun...)
		defer peer.Close()
		if err := peer.Connect(ctx); err != nil {
			return err
		}
		go func() {
			select {
			case <-peer.Ready():
				log.Info("realtime session live", "relay", fl.connect)
			case <-ctx.Done():
			}
		}()

	case fl.websocket:
		url, err := realtime.WebsocketURL(cfg.RealtimeURL, cfg.RealtimeModel)
		if err != nil {
			return err
		}
		tr := realtime.NewWSTransport(url, cfg.OpenAIKey, handler)
		if err := tr.Connect(ctx); err != nil {
			return err
		}
		defer tr.Close()
		go func() {
			if err := tr.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("realtime websocket", "error", err)
			}
		}()
		if fl.say != "" {
			if err := tr.SendText(fl.say); err != nil {
				return err
			}
		}
	}

	<-ctx.Done()
	log.Info("shutting down")
	if peer != nil {
		a := peer.AudioStats()
		log.Info("assistant audio", "packets", a.Packets, "bytes", a.Bytes, "lost", a.Lost)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
