package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// EnvPrefix is prepended to every environment variable read by FromEnv.
const EnvPrefix = "H1STREAM_"

type (
	HeadersNumber struct {
		Default int `env:"DEFAULT"`
		Maximal int `env:"MAXIMAL"`
	}
)

type (
	URI struct {
		// MaxLength limits the request-target. It is counted over all the fragments, so
		// splitting the URL between reads doesn't change the outcome.
		MaxLength int `env:"MAX_LENGTH"`
	}

	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of header lines allowed to be presented
		Number HeadersNumber `envPrefix:"NUMBER_"`
		// MaxKeyLength limits a single header field name.
		MaxKeyLength int `env:"MAX_KEY_LENGTH"`
		// MaxValueLength limits a single header field value, leading whitespaces excluded.
		MaxValueLength int `env:"MAX_VALUE_LENGTH"`
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. For chunked
		// and close-delimited bodies it is checked as the data arrives, for content-length
		// ones right after the headers. In order to disable the setting, use the
		// math.MaxUint64 value.
		MaxSize uint64 `env:"MAX_SIZE"`
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// the byte source. The buffer is reused across reads of a single message.
		ReadBufferSize int `env:"READ_BUFFER_SIZE"`
		// ReadTimeout is set as a deadline before every read from a connection. Zero
		// disables the deadline.
		ReadTimeout time.Duration `env:"READ_TIMEOUT"`
		// AcceptLoopInterruptPeriod is how often the accept loop checks whether it must
		// be stopped.
		AcceptLoopInterruptPeriod time.Duration `env:"ACCEPT_LOOP_INTERRUPT_PERIOD"`
	}
)

// Config holds limitations and pre-allocations used by the parser.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI     `envPrefix:"URI_"`
	Headers Headers `envPrefix:"HEADERS_"`
	Body    Body    `envPrefix:"BODY_"`
	NET     NET     `envPrefix:"NET_"`
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		URI: URI{
			// most web-entities limit it to 4-8kb, so 16kb is pretty much tolerant.
			MaxLength: 16 * 1024,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 50,
			},
			MaxKeyLength:   100,
			MaxValueLength: 8 * 1024, // there also might be extremely long cookies.
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
	}
}

// FromEnv returns the default config overridden by H1STREAM_-prefixed environment
// variables, e.g. H1STREAM_HEADERS_NUMBER_MAXIMAL or H1STREAM_NET_READ_TIMEOUT.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	return cfg, nil
}
