package trace

import (
	"os"
	"strconv"
)

// envToTarget maps the environment variables that enable a given
// trace target.
var envToTarget = map[string]Target{
	"COMMITCACHE_TRACE":      Setup,
	"COMMITCACHE_TRACE_LANE": Lane,
	"COMMITCACHE_TRACE_DIFF": Diff,
	"COMMITCACHE_TRACE_STORE": Store,
}

// ReadEnv reads the environment variables above and enables the
// corresponding trace targets. Call once at process start; it is
// additive with any target already set via SetTarget.
func ReadEnv() {
	var target Target
	for k, v := range envToTarget {
		if val, _ := strconv.ParseBool(os.Getenv(k)); val {
			target |= v
		}
	}
	SetTarget(target | GetTarget())
}
