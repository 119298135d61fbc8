//go:build !windows

package slug

func checkForbidden(string) error {
	return nil
}
