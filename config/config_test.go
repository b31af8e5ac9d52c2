package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults when nothing is set", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("H1STREAM_HEADERS_NUMBER_MAXIMAL", "7")
		t.Setenv("H1STREAM_URI_MAX_LENGTH", "64")
		t.Setenv("H1STREAM_NET_READ_TIMEOUT", "5s")

		cfg, err := FromEnv()
		require.NoError(t, err)
		require.Equal(t, 7, cfg.Headers.Number.Maximal)
		require.Equal(t, Default().Headers.Number.Default, cfg.Headers.Number.Default)
		require.Equal(t, 64, cfg.URI.MaxLength)
		require.Equal(t, 5*time.Second, cfg.NET.ReadTimeout)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("H1STREAM_BODY_MAX_SIZE", "a lot")

		_, err := FromEnv()
		require.Error(t, err)
	})
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}
