package shellquote

import (
	"testing"

	"github.com/loomctl/loom/internal/command"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain words", []string{"project", "list"}, "project list"},
		{"flag values kept", []string{"project", "view", "--id", "p-42"}, "project view --id p-42"},
		{"spaces quoted", []string{"agent", "chat", "send", "--message", "hi there"}, `agent chat send --message "hi there"`},
		{"embedded quote escaped", []string{"--message", `say "hi"`}, `--message "say \"hi\""`},
		{"backslash escaped", []string{"--message", `a\b`}, `--message "a\\b"`},
		{"empty arg quoted", []string{"--name", ""}, `--name ""`},
		{"equals quoted", []string{"--value", "a=b"}, `--value "a=b"`},
		{"flag binding kept", []string{"--key=env"}, `--key=env`},
		{"flag binding value quoted", []string{"--value=a=b"}, `--value="a=b"`},
		{"equals with no flag name", []string{"=x"}, `"=x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.args); got != tt.want {
				t.Errorf("Join(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestJoinSurvivesTokenization(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want string
	}{
		{"value with equals", []string{"settings", "set", "--key", "env", "--value", "a=b"}, "value", "a=b"},
		{"inline binding with equals", []string{"settings", "set", "--key", "env", "--value=a=b"}, "value", "a=b"},
		{"inline binding plain", []string{"settings", "set", "--key=env"}, "key", "env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := Join(tt.args)
			tree, err := command.ParseInput(raw)
			if err != nil {
				t.Fatalf("ParseInput(%q): %v", raw, err)
			}
			got, ok := tree.Named[tt.flag]
			if !ok {
				t.Fatalf("flag %q not bound in %q", tt.flag, raw)
			}
			if got.Kind != command.StringVal || got.Str != tt.want {
				t.Errorf("flag %q = %+v, want string %q", tt.flag, got, tt.want)
			}
		})
	}
}
