package assessment

import (
	"encoding/json"
	"strings"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
)

const fallbackConcept = "General"

// conceptLabel derives the display concept a question is reported under:
// first tag, else the standard code in its metadata, else a humanized
// module slug, else the module title, else "General".
func conceptLabel(q *types.Question) string {
	if q == nil {
		return fallbackConcept
	}

	if tag := firstJSONString(q.Tags); tag != "" {
		return tag
	}

	meta := map[string]interface{}{}
	if len(q.Metadata) > 0 {
		_ = json.Unmarshal(q.Metadata, &meta)
	}
	if code := metaString(meta, "standard_code"); code != "" {
		return code
	}
	if slug := metaString(meta, "module_slug"); slug != "" {
		return humanizeSlug(slug)
	}
	if title := metaString(meta, "module_title"); title != "" {
		return title
	}
	return fallbackConcept
}

func firstJSONString(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var vals []string
	if err := json.Unmarshal(raw, &vals); err != nil {
		return ""
	}
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func metaString(meta map[string]interface{}, key string) string {
	v, ok := meta[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func humanizeSlug(slug string) string {
	parts := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
