package codegen

import (
	"strings"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
)

// Validate applies the acceptance heuristic to raw model output. It is a
// substring check, not a parser: web-only tags, class components and prose
// explanations are rejected, and an import plus a default export must be
// present.
func Validate(code string) error {
	if strings.Contains(code, "div") ||
		strings.Contains(code, "class ") ||
		strings.Contains(strings.ToLower(code), "explanation") {
		return apierr.Validationf("Output contains forbidden elements or explanations.")
	}
	if !strings.Contains(code, "import") || !strings.Contains(code, "export default") {
		return apierr.Validationf("Output missing required imports or export.")
	}
	return nil
}
