//go:build unix

package common

import "golang.org/x/sys/unix"

// idleNice is the lowest scheduling priority on unix systems.
const idleNice = 19

// SetIdlePriority lowers the scheduling priority of the calling process so
// mining threads yield to everything else on the machine.
func SetIdlePriority() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, idleNice)
}
