package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeBatchFiles lets the shell complete JSON files for the first argument.
func completeBatchFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeSchemaRefs suggests the record definitions of the AVefi schema.
func completeSchemaRefs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	refs := []string{
		"#/$defs/MovingImageRecord",
		"#/$defs/WorkVariant",
		"#/$defs/Manifestation",
		"#/$defs/Item",
	}
	var matches []string
	for _, ref := range refs {
		if strings.HasPrefix(ref, toComplete) {
			matches = append(matches, ref)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
