package observability

import (
	"net/http"
	"strconv"
	"strings"
)

// serverTiming renders one Server-Timing metric, or "" when there is nothing to report.
func serverTiming(name string, durMs float64, desc string) string {
	if durMs <= 0 && desc == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(name)
	if durMs > 0 {
		b.WriteString(";dur=")
		b.WriteString(strconv.FormatFloat(durMs, 'f', 2, 64))
	}
	if desc != "" {
		b.WriteString(";desc=")
		b.WriteString(strconv.Quote(desc))
	}
	return b.String()
}

func AppendServerTiming(w http.ResponseWriter, name string, durMs float64, desc string) {
	if v := serverTiming(name, durMs, desc); v != "" {
		w.Header().Add("Server-Timing", v)
	}
}

func SetIfPos(w http.ResponseWriter, key string, ms float64) {
	if ms > 0 {
		w.Header().Set(key, strconv.FormatFloat(ms, 'f', 2, 64))
	}
}

// WriteLookupHeaders exposes where a read was served from and what each tier cost.
func WriteLookupHeaders(w http.ResponseWriter, source string, cacheMs, dbMs float64) {
	AppendServerTiming(w, "cache", cacheMs, "")
	AppendServerTiming(w, "db", dbMs, "")
	AppendServerTiming(w, "source", 0, source)
	w.Header().Set("X-Source", source)
	SetIfPos(w, "X-Cache-Time", cacheMs)
	SetIfPos(w, "X-DB-Time", dbMs)
}
