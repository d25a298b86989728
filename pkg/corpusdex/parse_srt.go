package corpusdex

import (
	"fmt"
	"strconv"
	"strings"
)

// srtCue is one parsed subtitle cue.
type srtCue struct {
	StartSeconds float64
	Text         string
}

// parseSRT concatenates cue text in cue order (single space between cues)
// and tags every resulting word with an SRTUrlSuffix annotation built from
// the cue's start timestamp, per spec.md §4.D.
func parseSRT(raw string, cfg SRTConfig) (parsedDocument, error) {
	cues, err := splitSRTCues(raw)
	if err != nil {
		return parsedDocument{}, err
	}

	var b strings.Builder
	var words []AnnotatedWord

	for i, cue := range cues {
		if i > 0 {
			b.WriteString(" ")
		}
		cueStart := b.Len()
		b.WriteString(cue.Text)

		cueWords := Tokenize(cue.Text)
		suffix := formatSRTSuffix(cue.StartSeconds, cfg)
		for _, w := range cueWords {
			w.ByteOffset += cueStart
			w.Annotation = WordAnnotation{HasSRTSuffix: true, SRTURLSuffix: suffix}
			words = append(words, w)
		}
	}

	return parsedDocument{CanonicalText: b.String(), Words: words}, nil
}

// formatSRTSuffix substitutes the cue timestamp into the configured
// template's literal "{}" placeholder.
func formatSRTSuffix(startSeconds float64, cfg SRTConfig) string {
	var ts string
	switch cfg.TimestampFormat {
	case SRTMinutesSeconds:
		total := int(startSeconds)
		ts = fmt.Sprintf("%d:%02d", total/60, total%60)
	default: // SRTSeconds
		ts = strconv.FormatFloat(startSeconds, 'f', -1, 64)
	}
	return strings.Replace(cfg.TimestampTemplate, "{}", ts, 1)
}

// splitSRTCues parses the SubRip format: a sequence of
//
//	<index>
//	<start> --> <end>
//	<text lines>
//	<blank line>
func splitSRTCues(raw string) ([]srtCue, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(raw), "\n\n")

	var cues []srtCue
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// Skip the numeric cue index on lines[0]; find the timing line.
		timingIdx := 0
		if !strings.Contains(lines[0], "-->") {
			timingIdx = 1
		}
		if timingIdx >= len(lines) || !strings.Contains(lines[timingIdx], "-->") {
			continue
		}

		start, err := parseSRTTimestamp(strings.TrimSpace(strings.Split(lines[timingIdx], "-->")[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid SRT timestamp: %w", err)
		}

		text := strings.Join(lines[timingIdx+1:], " ")
		cues = append(cues, srtCue{StartSeconds: start, Text: text})
	}
	return cues, nil
}

// parseSRTTimestamp parses "HH:MM:SS,mmm" into fractional seconds.
func parseSRTTimestamp(ts string) (float64, error) {
	ts = strings.ReplaceAll(ts, ",", ".")
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected HH:MM:SS.mmm, got %q", ts)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, err
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}
