// Command h1dump parses HTTP/1.x messages and prints them as JSON, one per line. Without
// -listen a single message is read from stdin, otherwise every accepted TCP connection is
// expected to carry one message.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/indigo-web/h1stream"
	"github.com/indigo-web/h1stream/config"
	"github.com/indigo-web/h1stream/internal/strutil"
	"github.com/indigo-web/h1stream/peer"
	"github.com/indigo-web/h1stream/status"
	"github.com/indigo-web/h1stream/transport"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	listenAddr = flag.String("listen", "", "accept TCP connections on the address instead of reading stdin")
	modeName   = flag.String("mode", "both", "accepted messages: request, response or both")
)

type environment struct {
	LogLevel zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	flag.Parse()

	if err := run(*listenAddr, *modeName); err != nil {
		fmt.Fprintf(os.Stderr, "h1dump: %v\n", err)
		os.Exit(1)
	}
}

func run(listen, modeName string) error {
	mode, err := parseMode(modeName)
	if err != nil {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	var e environment
	if err = env.ParseWithOptions(&e, env.Options{Prefix: config.EnvPrefix}); err != nil {
		return errors.Wrap(err, "failed to parse environment")
	}

	log, err := newLogger(e.LogLevel)
	if err != nil {
		return err
	}

	defer func() {
		_ = log.Sync()
	}()

	parser := h1stream.New(cfg).Mode(mode).Logger(log)

	if len(listen) == 0 {
		msg, err := parser.Parse(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "stdin")
		}

		return render(os.Stdout, msg, nil)
	}

	return serve(strutil.NormalizeAddress(listen), cfg, parser, log)
}

func serve(addr string, cfg *config.Config, parser *h1stream.Parser, log *zap.Logger) error {
	tcp := transport.NewTCP()
	if err := tcp.Bind(addr); err != nil {
		return err
	}

	defer func() {
		_ = tcp.Close()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		log.Info("stopping", zap.Stringer("signal", sig))
		tcp.Stop()
	}()

	// concurrent connections must not interleave their output
	var stdout sync.Mutex

	log.Info("listening", zap.Stringer("addr", tcp.Addr()))
	err := tcp.Listen(cfg.NET, func(conn *transport.Conn) {
		host, port := conn.Endpoint()
		msg, err := parser.Parse(conn)
		if err != nil {
			log.Warn("failed to parse message",
				zap.String("remote", host),
				zap.Uint16("code", uint16(status.CodeOf(err))),
				zap.Error(err),
			)
			return
		}

		remote := peer.Resolve(msg.Headers, host, port)
		stdout.Lock()
		defer stdout.Unlock()

		if err = render(os.Stdout, msg, &remote); err != nil {
			log.Error("failed to render message", zap.Error(err))
		}
	})

	tcp.Wait()
	return err
}

func parseMode(name string) (h1stream.Mode, error) {
	switch name {
	case "request":
		return h1stream.Request, nil
	case "response":
		return h1stream.Response, nil
	case "both", "":
		return h1stream.Both, nil
	default:
		return 0, errors.Newf("unknown mode: %q", name)
	}
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
