package logger

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"
)

func newTestHandler(cfg Config) (*filteringHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg.process()
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newFilteringHandler(base, &cfg), &buf
}

func record(msg, tag string) slog.Record {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func TestFilteringHandler(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		tag  string
		want bool
	}{
		{name: "no filters", cfg: Config{}, want: true},
		{name: "disabled tag", cfg: Config{DisabledTags: []string{"History"}}, tag: "history", want: false},
		{name: "enabled tag matches", cfg: Config{EnabledTags: []string{"history"}}, tag: "history", want: true},
		{name: "enabled tag excludes untagged", cfg: Config{EnabledTags: []string{"history"}}, want: false},
		{name: "disabled package", cfg: Config{DisabledPackages: []string{"logger"}}, want: false},
		{name: "enabled other package", cfg: Config{EnabledPackages: []string{"core"}}, want: false},
		{name: "disabled file", cfg: Config{DisabledFiles: []string{"handler_test.go"}}, want: false},
		{name: "enabled file", cfg: Config{EnabledFiles: []string{"handler_test.go"}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(tt.cfg)
			if err := h.Handle(context.Background(), record("hello", tt.tag)); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			got := strings.Contains(buf.String(), "hello")
			if got != tt.want {
				t.Fatalf("record written = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestConfigLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"err":     slog.LevelError,
		"bogus":   slog.LevelInfo,
	} {
		c := Config{LogLevel: in}
		if got := c.Level(); got != want {
			t.Fatalf("Config{LogLevel: %q}.Level() = %v, want %v", in, got, want)
		}
	}
}
