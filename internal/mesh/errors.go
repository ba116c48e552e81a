package mesh

import (
	"fmt"
	"strings"
)

// InputError reports a problem with what the user asked for: an unsupported
// file type, or a mesh selection that is ambiguous or does not exist. When
// the selection failed inside a multi-mesh file, Available lists every mesh
// name the file does contain.
type InputError struct {
	Msg       string
	Available []string
}

func (e *InputError) Error() string {
	if len(e.Available) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s\nAvailable meshes: %s", e.Msg, strings.Join(e.Available, ", "))
}

// FormatError reports malformed mesh data inside an otherwise readable file.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return e.Msg
}
