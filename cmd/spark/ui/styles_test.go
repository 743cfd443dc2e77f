package ui

import (
	"strings"
	"testing"
)

func TestThemeFromName(t *testing.T) {
	if got := ThemeFromName("light"); got.IsDark {
		t.Error("Expected light theme for \"light\"")
	}
	if got := ThemeFromName("dark"); !got.IsDark {
		t.Error("Expected dark theme for \"dark\"")
	}
	// Unknown names fall back to the product default
	if got := ThemeFromName("solarized"); !got.IsDark {
		t.Error("Expected dark fallback for unknown theme name")
	}
}

func TestLogoContainsBrand(t *testing.T) {
	logo := Logo(DefaultStyles())
	if !strings.Contains(logo, "_") {
		t.Error("Logo missing ASCII art")
	}
}

func TestDebateStylesCarryAccents(t *testing.T) {
	s := DefaultStyles()
	if s.Agent.GetForeground() != AgentBlue {
		t.Error("Agent style should use the blue accent")
	}
	if s.Rebuttal.GetForeground() != AgentPurple {
		t.Error("Rebuttal style should use the purple accent")
	}
	if s.Moderator.GetForeground() != AgentAmber {
		t.Error("Moderator style should use the amber accent")
	}
	if s.Conclusion.GetForeground() != AgentEmerald {
		t.Error("Conclusion style should use the emerald accent")
	}
}

func TestRenderDivider(t *testing.T) {
	s := DefaultStyles()
	if out := s.RenderDivider(0); out == "" {
		t.Error("Divider should clamp width to at least 1")
	}
}
