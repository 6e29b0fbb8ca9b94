// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/scrapbook/pkg/convert"
)

/*
TestToIntD falls back on empty and malformed input.
*/
func TestToIntD(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 7},
		{"42", 42},
		{" 42 ", 42},
		{"-3", -3},
		{"wide", 7},
		{"1.5", 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.ToIntD(tt.input, 7))
		})
	}
}

/*
TestToInt64 reports whether the value parsed.
*/
func TestToInt64(t *testing.T) {
	v, ok := convert.ToInt64("12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), v)

	_, ok = convert.ToInt64("twelve")
	assert.False(t, ok)
}
