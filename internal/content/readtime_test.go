package content

import "testing"

func TestWordCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"one", 1},
		{"# Heading\n\nTwo paragraphs here.", 5},
	}
	for _, c := range cases {
		if got := WordCount(c.in); got != c.want {
			t.Errorf("WordCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestReadMinutes(t *testing.T) {
	cases := []struct {
		words, wpm, want int
	}{
		{0, 200, 0},
		{1, 200, 1},
		{200, 200, 1},
		{201, 200, 2},
		{1000, 0, 5}, // default rate
	}
	for _, c := range cases {
		if got := ReadMinutes(c.words, c.wpm); got != c.want {
			t.Errorf("ReadMinutes(%d, %d) = %d, want %d", c.words, c.wpm, got, c.want)
		}
	}
}
