//go:build commitcache_debug

package assert

func check(cond bool, msg string) {
	if !cond {
		panic("commitcache: invariant violated: " + msg)
	}
}
