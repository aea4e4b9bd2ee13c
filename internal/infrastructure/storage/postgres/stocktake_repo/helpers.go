package stocktake_repo

import "strings"

func joinCols(cols []string) string {
	return strings.Join(cols, ", ")
}
