package ivr

import (
	"regexp"
	"strings"
)

// scriptWrapperRe matches one <IVRScripts> wrapper span, the container the
// authoring tool repeats once per script in a batch export. Non-greedy so
// adjacent wrappers split cleanly even when one of them holds garbage.
var scriptWrapperRe = regexp.MustCompile(`(?s)<IVRScripts>.*?</IVRScripts>`)

// prologOrCommentRe matches XML prologs, processing instructions, and
// comments, which an empty batch container may legitimately carry.
var prologOrCommentRe = regexp.MustCompile(`(?s)<\?.*?\?>|<!--.*?-->`)

// emptyContainerRe matches a document whose root element has no children at
// all, e.g. <scripts/> or <scripts></scripts>.
var emptyContainerRe = regexp.MustCompile(`(?s)^<[A-Za-z_][\w.-]*(\s[^<>]*?)?(/>|>\s*</[A-Za-z_][\w.-]*>)$`)

// Split slices sanitized batch text into one Fragment per script, preserving
// batch order and recording each fragment's byte offset for failure
// attribution.
//
// With one or more <IVRScripts> wrappers present, each wrapper span becomes a
// fragment. With none, a childless container (or blank input) is an empty
// batch and yields no fragments; anything else is passed through as a single
// fragment: either a bare script document, or something the parser will
// reject with a descriptive per-script failure.
func Split(text string) []Fragment {
	spans := scriptWrapperRe.FindAllStringIndex(text, -1)
	if len(spans) > 0 {
		frags := make([]Fragment, len(spans))
		for i, span := range spans {
			frags[i] = Fragment{Text: text[span[0]:span[1]], Offset: span[0]}
		}
		return frags
	}

	stripped := trimDocumentNoise(text)
	if stripped == "" || emptyContainerRe.MatchString(stripped) {
		return nil
	}
	return []Fragment{{Text: text}}
}

func trimDocumentNoise(text string) string {
	return strings.TrimSpace(prologOrCommentRe.ReplaceAllString(text, ""))
}
