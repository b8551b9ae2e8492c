package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funvibe/typespec/internal/artifact"
	"github.com/funvibe/typespec/internal/config"
	"github.com/funvibe/typespec/internal/typespec"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <module>",
		Short: "Print a module's types, specs and callbacks",
		Long: `Print a module's typespec metadata in surface syntax.

Example:
  typespec show --db ./artifacts.db My.Mod`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := artifact.OpenStore(rootOpts.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			a, ok, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("module %s not found in %s", args[0], rootOpts.Database)
			}

			color := false
			if f, isFile := cmd.OutOrStdout().(*os.File); isFile {
				color = useColor(f)
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatArtifact(a, color))
			return nil
		},
	}
}

const (
	colorAttr  = "\x1b[36m"
	colorReset = "\x1b[0m"
)

// FormatArtifact renders an artifact's typespec metadata as the
// declarations a module author would have written, section by section.
func FormatArtifact(a *artifact.Artifact, color bool) string {
	var b strings.Builder
	attr := func(name string) string {
		if color {
			return colorAttr + name + colorReset
		}
		return name
	}

	fmt.Fprintf(&b, "module %s (unit %s)\n", a.Module, a.UnitID)
	if !a.HasTypespecs() {
		b.WriteString("no typespec metadata\n")
		return b.String()
	}

	if types, _ := a.FetchTypes(); len(types) > 0 {
		b.WriteString("\n")
		for _, def := range types {
			name := "@" + config.TypeAttr
			if def.Kind == typespec.KindOpaque {
				name = "@" + config.OpaqueAttr
			}
			fmt.Fprintf(&b, "%s %s\n", attr(name), typespec.TypeDefToAST(def).String())
		}
	}

	if specs, _ := a.FetchSpecs(); len(specs) > 0 {
		b.WriteString("\n")
		for _, entry := range specs {
			for _, clause := range entry.Clauses {
				fmt.Fprintf(&b, "%s %s\n", attr("@"+config.SpecAttr), typespec.SpecToAST(entry.Name, clause).String())
			}
		}
	}

	callbacks, _ := a.FetchCallbacks()
	if len(callbacks) > 0 {
		b.WriteString("\n")
		for _, cb := range callbacks {
			name := "@" + config.CallbackAttr
			if cb.Macro {
				name = "@" + config.MacroCallbackAttr
			}
			for _, clause := range cb.Clauses {
				fmt.Fprintf(&b, "%s %s\n", attr(name), typespec.CallbackToAST(cb, clause).String())
			}
		}
	}

	if optional, _ := a.FetchOptionalCallbacks(); len(optional) > 0 {
		// Reported in external form: marker kept, macro arity unshifted.
		macro := make(map[typespec.FA]bool, len(callbacks))
		for _, cb := range callbacks {
			macro[cb.FA()] = cb.Macro
		}
		b.WriteString("\n")
		fas := make([]string, len(optional))
		for i, fa := range optional {
			if macro[fa] {
				fa.Arity--
			}
			fas[i] = fa.String()
		}
		fmt.Fprintf(&b, "%s %s\n", attr("@"+config.OptionalCallbacksAttr), strings.Join(fas, ", "))
	}
	return b.String()
}
