package model

import (
	"sort"
	"strings"
)

func missing(fields map[string]string) []string {
	var out []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
