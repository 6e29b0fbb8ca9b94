// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters and
CLI flags.

A malformed value falls back to a default instead of failing the request. Do
not use it where telling malformed input apart from the default matters; use
[strconv] directly there.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts str to an int, returning def when str is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}
	return def
}

// ToInt64 converts str to an int64, reporting whether it parsed.
func ToInt64(str string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
