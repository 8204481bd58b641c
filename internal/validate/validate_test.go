package validate

import (
	"reflect"
	"testing"

	"github.com/loomctl/loom/internal/command"
)

func validateInput(t *testing.T, input string) (*Command, error) {
	t.Helper()
	tree, err := command.ParseInput(input)
	if err != nil {
		t.Fatalf("ParseInput(%q) error: %v", input, err)
	}
	return Validate(tree)
}

func mustValidate(t *testing.T, input string) *Command {
	t.Helper()
	cmd, err := validateInput(t, input)
	if err != nil {
		t.Fatalf("Validate(%q) error: %v", input, err)
	}
	return cmd
}

func valueEq(a, b command.Value) bool {
	return reflect.DeepEqual(a, b)
}

func wantError(t *testing.T, input, code string) *Error {
	t.Helper()
	_, err := validateInput(t, input)
	if err == nil {
		t.Fatalf("Validate(%q) succeeded, want %s", input, code)
	}
	verr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if verr.Code != code {
		t.Fatalf("Validate(%q) code = %s, want %s", input, verr.Code, code)
	}
	return verr
}

func TestValidateResolvesCommand(t *testing.T) {
	cmd := mustValidate(t, `agent chat send --message "hi there" --role user`)

	if cmd.ID != "agent_chat_send" {
		t.Errorf("ID = %s, want agent_chat_send", cmd.ID)
	}
	if cmd.Namespace != "agent" {
		t.Errorf("Namespace = %s, want agent", cmd.Namespace)
	}
	if got := cmd.Flags["message"]; !valueEq(got, command.String("hi there")) {
		t.Errorf("message = %+v, want string \"hi there\"", got)
	}
	if got := cmd.Flags["role"]; !valueEq(got, command.String("user")) {
		t.Errorf("role = %+v, want string \"user\"", got)
	}
	if cmd.ContextFree {
		t.Error("agent chat send should not be context-free")
	}
	if !cmd.Streaming {
		t.Error("agent chat send should be streaming")
	}
	wantKeys := []string{"activeProject", "activeRoadmap", "activeChat"}
	if !reflect.DeepEqual(cmd.ContextKeys, wantKeys) {
		t.Errorf("ContextKeys = %v, want %v", cmd.ContextKeys, wantKeys)
	}
}

func TestValidateStructuralErrors(t *testing.T) {
	if _, err := Validate(nil); err == nil {
		t.Error("Validate(nil) succeeded")
	}
	wantError(t, "--orphan true", ErrInvalidAST)
	wantError(t, "warp speed engage", ErrUnknownNamespace)
	wantError(t, "project destroy", ErrUnknownCommand)
	wantError(t, "project list extra", ErrUnknownCommand)
}

func TestValidateUnknownFlag(t *testing.T) {
	verr := wantError(t, "project list --bogus 1", ErrUnknownFlag)
	allowed, ok := verr.Details["allowed_flags"].([]string)
	if !ok {
		t.Fatalf("allowed_flags missing from details: %+v", verr.Details)
	}
	want := []string{"archived", "limit"}
	if !reflect.DeepEqual(allowed, want) {
		t.Errorf("allowed_flags = %v, want %v", allowed, want)
	}
}

func TestValidateRequiredFlags(t *testing.T) {
	wantError(t, "project create", ErrMissingRequiredFlag)
	wantError(t, "settings set --key theme", ErrMissingRequiredFlag)

	// Required flag satisfied directly.
	mustValidate(t, "project select --id p-1")
}

func TestValidateAlternativesSatisfyRequiredness(t *testing.T) {
	// --id is required but declares --name as an alternative.
	cmd := mustValidate(t, `project select --name "Website Redesign"`)
	if _, ok := cmd.Flags["id"]; ok {
		t.Error("id should be absent when only the alternative is supplied")
	}
	if got := cmd.Flags["name"]; !valueEq(got, command.String("Website Redesign")) {
		t.Errorf("name = %+v", got)
	}

	verr := wantError(t, "project select", ErrMissingRequiredFlag)
	alts, ok := verr.Details["alternatives"].([]string)
	if !ok {
		t.Fatalf("alternatives missing from details: %+v", verr.Details)
	}
	if !reflect.DeepEqual(alts, []string{"id", "name"}) {
		t.Errorf("alternatives = %v, want [id name]", alts)
	}
}

func TestValidateSpecificityTieBreak(t *testing.T) {
	shorter := mustValidate(t, "roadmap view --id r-7")
	if shorter.ID != "roadmap_view" {
		t.Errorf("ID = %s, want roadmap_view", shorter.ID)
	}

	longer := mustValidate(t, "roadmap view tasks --id r-7")
	if longer.ID != "roadmap_view_tasks" {
		t.Errorf("ID = %s, want roadmap_view_tasks", longer.ID)
	}
}

func TestValidateTypeChecking(t *testing.T) {
	tests := []struct {
		name  string
		input string
		flag  string
		want  command.Value
	}{
		{
			name:  "number literal",
			input: "project list --limit 25",
			flag:  "limit",
			want:  command.Number(25),
		},
		{
			name:  "numeric string coerces to number",
			input: `project list --limit "25"`,
			flag:  "limit",
			want:  command.Number(25),
		},
		{
			name:  "boolean literal",
			input: "project list --archived true",
			flag:  "archived",
			want:  command.Bool(true),
		},
		{
			name:  "boolean word yes",
			input: "project list --archived yes",
			flag:  "archived",
			want:  command.Bool(true),
		},
		{
			name:  "boolean word OFF",
			input: "project list --archived OFF",
			flag:  "archived",
			want:  command.Bool(false),
		},
		{
			name:  "boolean numeral",
			input: "project list --archived 1",
			flag:  "archived",
			want:  command.Bool(true),
		},
		{
			name:  "string list splits on commas",
			input: "project create --name x --tags web,design",
			flag:  "tags",
			want:  command.StringList("web", "design"),
		},
		{
			name:  "number value for string flag renders to text",
			input: "settings set --key retries --value 3",
			flag:  "value",
			want:  command.String("3"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := mustValidate(t, tt.input)
			got := cmd.Flags[tt.flag]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s = %+v, want %+v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	verr := wantError(t, "project list --limit lots", ErrInvalidFlagType)
	if verr.Details["expected"] != "number" {
		t.Errorf("expected detail = %v, want number", verr.Details["expected"])
	}
	if verr.Details["value"] != "lots" {
		t.Errorf("value detail = %v, want lots", verr.Details["value"])
	}

	wantError(t, "project list --archived maybe", ErrInvalidFlagType)
}

func TestValidateMutualExclusion(t *testing.T) {
	verr := wantError(t, "settings reset --key theme --all", ErrMutuallyExclusiveFlags)
	flags, ok := verr.Details["flags"].([]string)
	if !ok {
		t.Fatalf("flags missing from details: %+v", verr.Details)
	}
	if !reflect.DeepEqual(flags, []string{"key", "all"}) {
		t.Errorf("flags = %v, want [key all]", flags)
	}

	// Either flag alone is fine.
	mustValidate(t, "settings reset --key theme")
	mustValidate(t, "settings reset --all")
}

func TestValidateDefaultInjection(t *testing.T) {
	cmd := mustValidate(t, "project list")
	if got := cmd.Flags["limit"]; !valueEq(got, command.Number(50)) {
		t.Errorf("limit default = %+v, want number 50", got)
	}
	if got := cmd.Flags["archived"]; !valueEq(got, command.Bool(false)) {
		t.Errorf("archived default = %+v, want bool false", got)
	}

	// Explicit value overrides the default.
	cmd = mustValidate(t, "project list --limit 5")
	if got := cmd.Flags["limit"]; !valueEq(got, command.Number(5)) {
		t.Errorf("limit = %+v, want number 5", got)
	}

	// Role default on the chat-send contract.
	cmd = mustValidate(t, `agent chat send --message "hi"`)
	if got := cmd.Flags["role"]; !valueEq(got, command.String("user")) {
		t.Errorf("role default = %+v, want string user", got)
	}
}

func TestValidateContextFree(t *testing.T) {
	cmd := mustValidate(t, "settings show")
	if !cmd.ContextFree {
		t.Error("settings show should be context-free")
	}
	if len(cmd.ContextKeys) != 0 {
		t.Errorf("ContextKeys = %v, want empty", cmd.ContextKeys)
	}
}

func TestValidateDeterminism(t *testing.T) {
	input := `roadmap view tasks --id r-7 --status open`
	first := mustValidate(t, input)
	second := mustValidate(t, input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	badInput := "settings reset --key a --all"
	errFirst := wantError(t, badInput, ErrMutuallyExclusiveFlags)
	errSecond := wantError(t, badInput, ErrMutuallyExclusiveFlags)
	if !reflect.DeepEqual(errFirst, errSecond) {
		t.Errorf("error values differ between runs:\nfirst:  %+v\nsecond: %+v", errFirst, errSecond)
	}
}
