package hook

import (
	"strings"
	"text/template"
)

type zshAdapter struct{}

func (zshAdapter) Name() string { return "zsh" }

func (zshAdapter) Detect() bool { return loginShell() == "zsh" }

func (zshAdapter) Script(binary string) string {
	var buf strings.Builder
	_ = zshTemplate.Execute(&buf, scriptData{Binary: binary})
	return buf.String()
}

// Zsh registers into precmd_functions, the list of functions zsh runs after
// each command completes. The `(I)` subscript flag is an index lookup: zero
// means the trigger is not yet in the list, so appending stays idempotent
// across double-sourcing.
//
// `fc -ln -1` prints the most recent history line without its event number;
// any leading indentation is trimmed by the dispatcher.
var zshTemplate = template.Must(template.New("zsh_hook").Parse(`# icmd zsh integration (auto-generated, do not edit manually)
# Source this file from your ~/.zshrc:
#   source ~/.config/icmd/icmd.hook.zsh

if ! command -v "{{.Binary}}" >/dev/null 2>&1; then
    return 0
fi

# One dedup scope per shell session; double-sourcing must not re-allocate.
if [[ -z "$ICMD_SESSION" ]]; then
    export ICMD_SESSION="$("{{.Binary}}" hook session 2>/dev/null)"
fi

__icmd_capture() {
    local cmd
    cmd="$(fc -ln -1 2>/dev/null)"
    "{{.Binary}}" hook fire --session "$ICMD_SESSION" -- "$cmd" 2>/dev/null
}

if (( ${precmd_functions[(I)__icmd_capture]} == 0 )); then
    precmd_functions+=(__icmd_capture)
fi
`))
