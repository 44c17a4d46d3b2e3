package replay

import (
	"errors"
	"testing"
)

func TestParseSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantCount int
		wantSfx   string
		wantErr   bool
	}{
		{name: "typical", input: "p3v0s4a9X2", wantCount: 3, wantSfx: "4a9X2"},
		{name: "double digit count", input: "p12v44sabc", wantCount: 12, wantSfx: "abc"},
		{name: "garbage", input: "garbage", wantErr: true},
		{name: "uppercase literal", input: "P3v0sabc", wantErr: true},
		{name: "missing suffix", input: "p3v0s", wantErr: true},
		{name: "missing variant", input: "p3sabc", wantErr: true},
		{name: "leading noise", input: "xp3v0sabc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSeed(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedSeed) {
					t.Fatalf("expected ErrMalformedSeed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse seed: %v", err)
			}
			if got.PlayerCount != tc.wantCount || got.Suffix != tc.wantSfx {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestParseMatchID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "replay url", input: "https://hanab.live/replay/12345", want: "12345"},
		{name: "shared replay url", input: "https://hanab.live/shared-replay/98", want: "98"},
		{name: "case insensitive", input: "HTTPS://HANAB.LIVE/REPLAY/42", want: "42"},
		{name: "bare digits", input: "12345", want: "12345"},
		{name: "fragment without host", input: "replay/777#turn5", want: "777"},
		{name: "letters", input: "abc", want: ""},
		{name: "digits with noise", input: "12345x", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseMatchID(tc.input); got != tc.want {
				t.Fatalf("ParseMatchID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestGameOptionsViolations(t *testing.T) {
	t.Parallel()

	if v := (GameOptions{}).Violations(); len(v) != 0 {
		t.Fatalf("vanilla options reported violations: %v", v)
	}

	opts := GameOptions{DeckPlays: true, AllOrNothing: true}
	got := opts.Violations()
	if len(got) != 2 || got[0] != "deckPlays" || got[1] != "allOrNothing" {
		t.Fatalf("violations: %v", got)
	}
}
