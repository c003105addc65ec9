package main

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/wippyai/canvas-host/capability"
	"github.com/wippyai/canvas-host/input"
)

func TestKeyTap(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		key  string
		mods input.Modifiers
	}{
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, "ArrowLeft", 0},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, "w", 0},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, " ", 0},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}, Alt: true}, "d", input.ModAlt},
		{"shift arrow", tea.KeyMsg{Type: tea.KeyShiftRight}, "ArrowRight", input.ModShift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, ok := keyTap(tt.msg)
			if !ok || len(events) != 2 {
				t.Fatalf("keyTap = %v, %v", events, ok)
			}
			if events[0].Action != input.KeyDown || events[1].Action != input.KeyUp {
				t.Fatalf("actions = %v, %v", events[0].Action, events[1].Action)
			}
			for _, ev := range events {
				if ev.Key != tt.key || ev.Modifiers != tt.mods {
					t.Errorf("event = %+v, want key %q mods %v", ev, tt.key, tt.mods)
				}
			}
		})
	}

	if _, ok := keyTap(tea.KeyMsg{Type: tea.KeyCtrlA}); ok {
		t.Error("ctrl+a should have no DOM equivalent")
	}
}

func TestHalfBlock(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	out := halfBlock(img, 2, 2)
	if n := strings.Count(out, "▀"); n != 4 {
		t.Fatalf("cells = %d, want 4", n)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Fatalf("rows separated by %d newlines, want 1", n)
	}
	if got := pixel(img, 0, 0); got != "#ff0000" {
		t.Errorf("pixel(0,0) = %s", got)
	}
	if got := pixel(img, 9, 9); got != "#000000" {
		t.Errorf("out of bounds pixel = %s", got)
	}
}

func TestNewProbe(t *testing.T) {
	tests := []struct {
		flag    string
		env     string
		profile termenv.Profile
		want    capability.Backend
	}{
		{"primary", "", termenv.Ascii, capability.Primary},
		{"fallback", "", termenv.TrueColor, capability.Fallback},
		{"", "fallback", termenv.TrueColor, capability.Fallback},
		{"", "", termenv.TrueColor, capability.Primary},
	}
	for _, tt := range tests {
		t.Setenv(backendEnv, tt.env)
		probe, err := newProbe(tt.flag, tt.profile, zap.NewNop())
		if err != nil {
			t.Fatalf("newProbe(%q): %v", tt.flag, err)
		}
		if got := probe.Backend(); got != tt.want {
			t.Errorf("flag=%q env=%q profile=%v: backend = %v, want %v", tt.flag, tt.env, tt.profile, got, tt.want)
		}
	}

	if _, err := newProbe("vulkan", termenv.Ascii, zap.NewNop()); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestWindowSize(t *testing.T) {
	// -1 is never a terminal.
	got := windowSize(options{width: 640}, -1)
	if got.Width != 640 || got.Height != 24 {
		t.Fatalf("windowSize = %v, want 640x24", got)
	}
}
