// Package qa classifies the verdict the QA reviewer stage opens its
// review with.
package qa

import (
	"fmt"
	"strings"
)

type Verdict string

const (
	VerdictPass          Verdict = "PASS"
	VerdictPassWithNotes Verdict = "PASS WITH NOTES"
	VerdictFail          Verdict = "FAIL"
	VerdictUnknown       Verdict = "UNKNOWN"
)

// Classify reads the verdict out of a QA review value. The review is
// normally a string but looser prompts can yield an object; anything is
// stringified first. PASS WITH NOTES is checked before PASS because the
// former contains the latter.
func Classify(review any) Verdict {
	if review == nil {
		return VerdictUnknown
	}
	s := strings.ToUpper(fmt.Sprintf("%v", review))
	switch {
	case strings.Contains(s, string(VerdictPassWithNotes)):
		return VerdictPassWithNotes
	case strings.Contains(s, string(VerdictPass)):
		return VerdictPass
	case strings.Contains(s, string(VerdictFail)):
		return VerdictFail
	default:
		return VerdictUnknown
	}
}
