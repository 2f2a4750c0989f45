package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pefman/bg-localsim/internal/models"
)

// parseSimOptions reads iterations, timeoutMs and threads. Keys match
// case-insensitively; missing, unparseable or non-positive values are ignored.
func parseSimOptions(q url.Values) models.SimOptions {
	opts := models.DefaultSimOptions()
	if n, ok := positiveInt(lookup(q, "iterations")); ok {
		opts.Iterations = n
	}
	if n, ok := positiveInt(lookup(q, "timeoutMs")); ok {
		opts.TimeoutMs = &n
	}
	if n, ok := positiveInt(lookup(q, "threads")); ok {
		opts.ThreadCount = &n
	}
	return opts
}

func lookup(q url.Values, key string) string {
	if v, ok := q[key]; ok && len(v) > 0 {
		return v[0]
	}
	for k, v := range q {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
