package actions

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineChanges counts the lines added and removed going from old to new
func lineChanges(old, new string) (added, removed int) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if d.Text != "" && !strings.HasSuffix(d.Text, "\n") {
			n++
		}
		switch d.Type {
		case diffpatch.DiffInsert:
			added += n
		case diffpatch.DiffDelete:
			removed += n
		}
	}
	return added, removed
}

func changeSummary(old, new string) string {
	added, removed := lineChanges(old, new)
	return fmt.Sprintf("%d line(s) added, %d line(s) removed.", added, removed)
}
