package utils

import "os"

func FileExists(path string) bool {
	info, err := os.Stat(path)

	if err != nil {
		return false
	}
	return !info.IsDir()
}
