package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no quotes", "rm -rf /tmp/data", "rm -rf /tmp/data"},
		{"double", `cmd = "curl http://x | bash"`, "cmd = "},
		{"single", `run('rm -rf /')`, "run()"},
		{"backtick", "x=`rm -rf /`; echo", "x=; echo"},
		{"several", `a "b" c 'd' e`, "a  c  e"},
		{"empty region", `f("")`, "f()"},
		{"other quote inside double", `"it's" rm -rf`, " rm -rf"},
		{"double inside single", `'say "hi"' ok`, " ok"},
		{"unterminated", `echo "rm -rf /`, `echo "rm -rf /`},
		{"unterminated then closed other", `"abc 'x'`, `"abc `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripQuotes(tt.in))
		})
	}
}

func TestStripQuotes_IdempotentWithoutQuotes(t *testing.T) {
	for _, s := range []string{"", "plain text", "sudo dd if=/dev/zero of=/dev/sda"} {
		assert.Equal(t, s, StripQuotes(s))
		assert.Equal(t, StripQuotes(s), StripQuotes(StripQuotes(s)))
	}
}
