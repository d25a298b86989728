package corpusdex

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// extractFrontmatter splits a leading `---\n...\n---\n` block from raw text
// according to mode. On Ignore it returns raw unchanged and no fields. On
// Omit it strips the block without parsing it. On Parse it strips the block
// and decodes it as a YAML mapping into fields.
func extractFrontmatter(raw string, mode FrontmatterHandling) (body string, fields map[string]string, err error) {
	if mode == FrontmatterIgnore {
		return raw, nil, nil
	}

	block, rest, ok := splitFrontmatterBlock(raw)
	if !ok {
		return raw, nil, nil
	}

	if mode == FrontmatterOmit {
		return rest, nil, nil
	}

	var raw0 map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw0); err != nil {
		return rest, nil, err
	}

	fields = make(map[string]string, len(raw0))
	for k, v := range raw0 {
		fields[k] = stringifyFrontmatterValue(v)
	}
	return rest, fields, nil
}

// splitFrontmatterBlock finds a leading `---` delimited block. ok is false
// if no such block is present.
func splitFrontmatterBlock(raw string) (block, rest string, ok bool) {
	const delim = "---"
	if !strings.HasPrefix(raw, delim) {
		return "", raw, false
	}

	afterFirst := raw[len(delim):]
	afterFirst = strings.TrimPrefix(afterFirst, "\n")
	afterFirst = strings.TrimPrefix(afterFirst, "\r\n")

	idx := strings.Index(afterFirst, "\n"+delim)
	if idx < 0 {
		return "", raw, false
	}

	block = afterFirst[:idx]
	remainder := afterFirst[idx+1+len(delim):]
	remainder = strings.TrimPrefix(remainder, "\n")
	remainder = strings.TrimPrefix(remainder, "\r\n")

	return block, remainder, true
}

func stringifyFrontmatterValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := yaml.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}
