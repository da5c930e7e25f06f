//go:build !linux

package drive

import "errors"

func deviceNumbers(path string) (major, minor uint32, err error) {
	return 0, 0, errors.New("block device lookup requires linux")
}
