package catalog

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{245, "04:05"},
		{3665, "61:05"},
		{-1, "N/A"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestLinkFor(t *testing.T) {
	if got := LinkFor("abc123"); got != "https://music.youtube.com/watch?v=abc123" {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestJoinArtists(t *testing.T) {
	cases := []struct {
		names []string
		want  string
	}{
		{nil, "N/A"},
		{[]string{""}, "N/A"},
		{[]string{"Daft Punk"}, "Daft Punk"},
		{[]string{"Daft Punk", "Pharrell Williams"}, "Daft Punk, Pharrell Williams"},
		{[]string{" Nile Rodgers ", ""}, "Nile Rodgers"},
	}
	for _, tc := range cases {
		if got := JoinArtists(tc.names); got != tc.want {
			t.Errorf("JoinArtists(%v) = %q, want %q", tc.names, got, tc.want)
		}
	}
}
