//go:build !unix

package common

// SetIdlePriority is a no-op on platforms without setpriority.
func SetIdlePriority() error {
	return nil
}
