package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	reports := []DeviceReport{
		{Device: DeviceInfo{Serial: "a"}, Supported: true, Result: true},
		{Device: DeviceInfo{Serial: "b"}, Supported: false},
		{Device: DeviceInfo{Serial: "c"}, Error: "device offline"},
	}

	s := Summarize("open", reports)

	assert.Equal(t, "open", s.Command)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Success)
	assert.Equal(t, []string{"b", "c"}, s.Failed)
	assert.Len(t, s.Reports, 3)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("check", nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Success)
	assert.Empty(t, s.Failed)
}
