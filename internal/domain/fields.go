package domain

import "encoding/json"

// Fields holds document attributes that are stored and returned as-is.
type Fields map[string]any

func flatten(extra Fields, known map[string]any) ([]byte, error) {
	out := make(map[string]any, len(extra)+len(known))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range known {
		out[k] = v
	}
	return json.Marshal(out)
}

func takeString(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	s, _ := v.(string)
	return s
}

func remaining(raw map[string]any) Fields {
	if len(raw) == 0 {
		return nil
	}
	return Fields(raw)
}
