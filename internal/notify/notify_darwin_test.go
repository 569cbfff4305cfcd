//go:build darwin

package notify

import (
	"reflect"
	"testing"
)

func TestOsascriptArgs(t *testing.T) {
	tests := []struct {
		name    string
		message string
		level   Level
		want    string
	}{
		{"plain", "Hello", LevelSuccess, `display notification "Hello" with title "taskboard"`},
		{"quotes", `Hello "World"`, LevelSuccess, `display notification "Hello \"World\"" with title "taskboard"`},
		{"backslashes", `Path\to\file`, LevelSuccess, `display notification "Path\\to\\file" with title "taskboard"`},
		{"newlines", "two\nlines", LevelSuccess, `display notification "two lines" with title "taskboard"`},
		{"error plays sound", "boom", LevelError, `display notification "boom" with title "taskboard" sound name "default"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := osascriptArgs(AppName, tc.message, tc.level)
			if want := []string{"-e", tc.want}; !reflect.DeepEqual(got, want) {
				t.Errorf("osascriptArgs() = %q, want %q", got, want)
			}
		})
	}
}
