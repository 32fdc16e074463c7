package hook

import (
	"strings"
	"testing"
)

func TestBashScriptShape(t *testing.T) {
	script := bashAdapter{}.Script("/usr/local/bin/icmd")

	for _, want := range []string{
		`command -v "/usr/local/bin/icmd"`,
		`[[ -z "$ICMD_SESSION" ]]`,
		`builtin history 1`,
		`hook fire --session "$ICMD_SESSION" -- "$cmd" 2>/dev/null`,
		`PROMPT_COMMAND`,
		`__icmd_capture`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("bash script missing %q", want)
		}
	}
	// Registration must be guarded so re-sourcing never chains twice.
	if !strings.Contains(script, `"$PROMPT_COMMAND" != *"__icmd_capture"*`) {
		t.Error("bash script missing PROMPT_COMMAND substring guard")
	}
}

func TestZshScriptShape(t *testing.T) {
	script := zshAdapter{}.Script("/usr/local/bin/icmd")

	for _, want := range []string{
		`command -v "/usr/local/bin/icmd"`,
		`[[ -z "$ICMD_SESSION" ]]`,
		`fc -ln -1`,
		`hook fire --session "$ICMD_SESSION" -- "$cmd" 2>/dev/null`,
		`precmd_functions[(I)__icmd_capture]`,
		`precmd_functions+=(__icmd_capture)`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("zsh script missing %q", want)
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"bash", "zsh"} {
		adapter, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if adapter.Name() != name {
			t.Fatalf("ByName(%q).Name() = %q", name, adapter.Name())
		}
	}

	if _, err := ByName("fish"); err == nil {
		t.Fatal("ByName(fish) should fail")
	}
}

func TestDetect(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	adapter, err := Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if adapter.Name() != "zsh" {
		t.Fatalf("Detect() = %q, want zsh", adapter.Name())
	}

	t.Setenv("SHELL", "/opt/weird/ksh")
	if _, err := Detect(); err == nil {
		t.Fatal("Detect should fail for unsupported login shell")
	}
}
