package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/warehouse"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// validKindsStr is a comma-separated list of item kinds for error output.
var validKindsStr = strings.Join(types.StandardKinds, ", ")

// parseKind checks that arg names a known item kind.
func parseKind(arg string) (string, error) {
	if !slices.Contains(types.StandardKinds, arg) {
		return "", userError(fmt.Errorf("unknown kind %q (valid: %s)", arg, validKindsStr))
	}
	return arg, nil
}

// parseInt parses a decimal integer argument; name labels it in errors.
func parseInt(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, userError(fmt.Errorf("invalid %s %q: must be an integer", name, arg))
	}
	return n, nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// emitItem writes one item as JSON or as a listing line.
func (s *session) emitItem(cmd *cobra.Command, item types.Item) error {
	if s.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), item)
	}
	fmt.Fprintln(cmd.OutOrStdout(), warehouse.FormatItem(item))
	return nil
}
