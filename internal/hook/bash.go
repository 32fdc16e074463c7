package hook

import (
	"strings"
	"text/template"
)

type bashAdapter struct{}

func (bashAdapter) Name() string { return "bash" }

func (bashAdapter) Detect() bool { return loginShell() == "bash" }

func (bashAdapter) Script(binary string) string {
	var buf strings.Builder
	_ = bashTemplate.Execute(&buf, scriptData{Binary: binary})
	return buf.String()
}

type scriptData struct {
	Binary string
}

// Bash registers into PROMPT_COMMAND, which runs after each command finishes
// and before the next prompt is drawn. PROMPT_COMMAND is a command chain, so
// the trigger is prepended, preserving whatever the user already has there,
// and only when not already present.
//
// `history 1` is the introspection mechanism: its output carries an index
// prefix ("  123  cmd") that sed strips. HISTTIMEFORMAT is cleared for the
// lookup so no timestamp prefix leaks into the captured text.
var bashTemplate = template.Must(template.New("bash_hook").Parse(`# icmd bash integration (auto-generated, do not edit manually)
# Source this file from your ~/.bashrc:
#   source ~/.config/icmd/icmd.hook.bash

if ! command -v "{{.Binary}}" >/dev/null 2>&1; then
    return 0
fi

# One dedup scope per shell session; double-sourcing must not re-allocate.
if [[ -z "$ICMD_SESSION" ]]; then
    export ICMD_SESSION="$("{{.Binary}}" hook session 2>/dev/null)"
fi

__icmd_capture() {
    local cmd
    cmd="$(HISTTIMEFORMAT= builtin history 1 | sed 's/^ *[0-9]\{1,\}[* ] *//')"
    "{{.Binary}}" hook fire --session "$ICMD_SESSION" -- "$cmd" 2>/dev/null
}

if [[ -z "$PROMPT_COMMAND" ]]; then
    PROMPT_COMMAND="__icmd_capture"
elif [[ "$PROMPT_COMMAND" != *"__icmd_capture"* ]]; then
    PROMPT_COMMAND="__icmd_capture; $PROMPT_COMMAND"
fi
`))
