package platform

import (
	"bufio"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

const procStatusFile = "/proc/self/status"

// procUmask reads the umask of the process from procfs, which (unlike
// swapping it) leaves the mask of concurrently created files untouched. It
// reports false on kernels that do not expose the "Umask" field.
func procUmask() (fs.FileMode, bool) {
	return parseStatusUmask(procStatusFile)
}

func parseStatusUmask(path string) (fs.FileMode, bool) {
	file, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		value, found := strings.CutPrefix(scanner.Text(), "Umask:")
		if !found {
			continue
		}

		mask, err := strconv.ParseUint(strings.TrimSpace(value), 8, 32)
		if err != nil {
			return 0, false
		}

		return fs.FileMode(mask) & fs.ModePerm, true
	}

	return 0, false
}
