package logger

import "strings"

var levelNames = map[string]string{
	"debug":   "DEBUG",
	"info":    "INFO",
	"warn":    "WARN",
	"warning": "WARN",
	"error":   "ERROR",
}

// outcomes outside this set are dropped.
var knownOutcome = map[string]bool{
	"ok":           true,
	"fail":         true,
	"cancelled":    true,
	"rate_limited": true,
	"reprompt":     true,
	"complete":     true,
}

// sensitive keys are masked before formatting.
var phoneKeys = map[string]bool{
	"phone":        true,
	"phone_number": true,
}

func normalizeLevel(level string) string {
	if level == "" {
		return "INFO"
	}
	if mapped, ok := levelNames[strings.ToLower(level)]; ok {
		return mapped
	}
	return strings.ToUpper(level)
}

var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"handler",
	"op",
	"state",
	"flow",
	"cb_key",
	"outcome",
	"duration_ms",
	"lead_id",
	"service",
	"phone",
	"asset",
	"run_id",
	"kind",
	"total",
	"sent",
	"unreachable",
	"failed",
	"skipped",
	"mode",
	"listen",
	"public_url",
	"http_code",
	"driver",
	"db",
	"host",
	"port",
	"err",
	"err_code",
	"cause",
	"retryable",
	"attempts",
	"backoff_ms",
}
