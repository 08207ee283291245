package artifact

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/gosimple/slug"
)

// Filename builds YYYY-MM-DD-<slug>-NN.json where NN is xxhash(seed)%100.
// The hash suffix keeps same-day runs of the same brief from colliding
// without resorting to full UUIDs in file names.
func Filename(dateISO, title string, seed []byte) string {
	s := slug.Make(title)
	if s == "" {
		s = "run"
	}
	h := xxhash.Sum64(seed) % 100
	return fmt.Sprintf("%s-%s-%02d.json", dateISO, s, h)
}
