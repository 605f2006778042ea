// Test Type: Unit Test
// Description: Recognizing generated barrels

package barrel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
)

func TestIsGenerated(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"rendered", barrel.Render(barrel.NewConventions(""), "src", []string{"src/a.ts"}, ""), true},
		{"rendered_with_prefix", barrel.Render(barrel.NewConventions(""), "src", []string{"src/a.ts"}, "/* eslint-disable */"), true},
		{"crlf", barrel.Marker + "\r\n\r\nexport * from './a'", true},
		{"hand_written", "export function realCode() {}\n", false},
		{"marker_inside_line", "const s = '" + barrel.Marker + "'", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, barrel.IsGenerated([]byte(tt.content)))
		})
	}
}
