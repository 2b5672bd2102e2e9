package segment

import (
	"path/filepath"
	"strconv"
	"strings"
)

//TakeName derives a take's output file name from the source file name and the 1-based take number:
//'F_PG1_Subject_1_L.avi', 2 -> 'F_PG1_Subject_1_L_2.avi'. ext replaces the source extension when not empty.
func TakeName(source string, take int, ext string) string {
	base := filepath.Base(source)
	srcExt := filepath.Ext(base)
	if ext == "" {
		ext = srcExt
	} else if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return strings.TrimSuffix(base, srcExt) + "_" + strconv.Itoa(take) + ext
}
