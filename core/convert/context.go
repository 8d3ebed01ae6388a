package convert

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// frameKind identifies one scoped block context.
type frameKind uint8

const (
	frameBlockquote frameKind = iota
	framePre
	frameCode
	frameHeading
	frameList
	frameItem
)

// listKind tags a list frame as ordered or unordered.
type listKind uint8

const (
	listOrdered listKind = iota
	listUnordered
)

// frame is one entry of the block-context stack. Frames are pushed on
// element open and popped on the matching close, replacing the
// breadcrumb re-walk of earlier designs with explicit scoped state.
type frame struct {
	kind  frameKind
	level int // heading level, 1-6

	list listKind
	// counter counts direct child items; it numbers ordered markers.
	counter int
	// occurrence is how many sibling lists of the same kind preceded
	// this one; it selects the unordered marker rotation.
	occurrence int
	// sublists counts unordered lists opened inside this item scope.
	sublists int
}

// unorderedMarkers is the bullet rotation for sibling unordered lists.
var unorderedMarkers = [3]string{"*", "+", "-"}

// maxOrdinal is the largest ordered-list number CommonMark permits.
const maxOrdinal = 999999999

func (r *run) push(f *frame) { r.frames = append(r.frames, f) }

func (r *run) pop() {
	if len(r.frames) > 0 {
		r.frames = r.frames[:len(r.frames)-1]
	}
}

func (r *run) top() *frame {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// popKind removes the topmost frame of the given kind together with any
// stale frames above it. A missing frame is a no-op, so unbalanced
// closers cannot corrupt the stack.
func (r *run) popKind(kind frameKind) {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].kind == kind {
			r.frames = r.frames[:i]
			return
		}
	}
}

func (r *run) inPre() bool {
	for _, f := range r.frames {
		if f.kind == framePre {
			return true
		}
	}
	return false
}

func (r *run) inList() bool {
	for _, f := range r.frames {
		if f.kind == frameList {
			return true
		}
	}
	return false
}

// nearestList returns the innermost open list frame.
func (r *run) nearestList() *frame {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].kind == frameList {
			return r.frames[i]
		}
	}
	return nil
}

// nearestItem returns the innermost open item frame.
func (r *run) nearestItem() *frame {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].kind == frameItem {
			return r.frames[i]
		}
	}
	return nil
}

// listMarker renders the marker for an item of the given list.
func listMarker(list *frame) string {
	if list.list == listOrdered {
		n := list.counter
		if n < 1 {
			n = 1
		}
		if n > maxOrdinal {
			n = maxOrdinal
		}
		return strconv.Itoa(n) + "."
	}
	return unorderedMarkers[list.occurrence%3]
}

// blockContext derives the first-line and continuation prefixes plus the
// transient flags from the frame stack, outermost frame first.
func (r *run) blockContext() (first, cont string, inPre, oneLine bool) {
	var fb, cb strings.Builder

	innermost := -1
	for i, f := range r.frames {
		if f.kind == frameItem {
			innermost = i
		}
	}

	var owner *frame // list owning the next item frame
	for i, f := range r.frames {
		switch f.kind {
		case frameBlockquote:
			fb.WriteString("> ")
			cb.WriteString("> ")
		case framePre:
			inPre = true
		case frameCode:
			if inPre {
				fb.WriteString("    ")
				cb.WriteString("    ")
			}
		case frameHeading:
			oneLine = true
		case frameList:
			owner = f
		case frameItem:
			if owner == nil {
				continue
			}
			marker := listMarker(owner)
			indent := strings.Repeat(" ", uniseg.GraphemeClusterCount(marker))
			if i == innermost {
				fb.WriteString(marker + " ")
			} else {
				fb.WriteString(indent + " ")
			}
			cb.WriteString(indent + " ")
			owner = nil
		}
	}
	return fb.String(), cb.String(), inPre, oneLine
}

// flush emits the line buffer as one or more output lines and clears it.
func (r *run) flush() { r.flushLine(false) }

// flushHard flushes and marks the final emitted line with the two
// trailing spaces of a Markdown hard break.
func (r *run) flushHard() { r.flushLine(true) }

func (r *run) flushLine(hardBreak bool) {
	text := r.line.String()
	r.line.Reset()

	first, cont, inPre, oneLine := r.blockContext()

	// Preformatted content is never trimmed, collapsed, or wrapped.
	if inPre {
		if text == "" {
			return
		}
		lines := strings.Split(text, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		prefix := first
		for _, ln := range lines {
			if ln == "" {
				r.out.WriteString("\n")
			} else {
				r.out.WriteString(prefix + ln + "\n")
			}
			prefix = cont
		}
		return
	}

	text = strings.Trim(text, " \t")
	if text == "" {
		return
	}

	if oneLine {
		r.out.WriteString(first + text + "\n")
		return
	}

	lines := r.wrap(text, first, cont)
	if hardBreak && len(lines) > 0 {
		lines[len(lines)-1] += "  "
	}
	for _, ln := range lines {
		r.out.WriteString(ln + "\n")
	}
}

// blankLine requests a blank separator line, capped so the output never
// contains more than one consecutive blank line.
func (r *run) blankLine() {
	s := r.out.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	r.out.WriteString("\n")
}
