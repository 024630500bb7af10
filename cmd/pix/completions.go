package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/encode"
	"github.com/raphi011/pix/internal/jobdata"
)

// completePresetNames completes preset names with their descriptions.
func completePresetNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, p := range config.Presets() {
		names = append(names, p.Name+"\t"+p.Description)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes output format names.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, f := range encode.Formats() {
		names = append(names, strings.TrimPrefix(f.Ext, ".")+"\t"+f.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completePositions completes counter position values.
func completePositions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"first\tcounter before the generated name",
		"last\tcounter after the generated name",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeJobDataModes completes sidecar export modes.
func completeJobDataModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, m := range jobdata.Modes() {
		names = append(names, string(m))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeImageFiles restricts file completion to decodable image
// extensions.
func completeImageFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var exts []string
	for _, e := range encode.InputExts() {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	return exts, cobra.ShellCompDirectiveFilterFileExt
}

// completeJSONFiles restricts file completion to .json files.
func completeJSONFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
