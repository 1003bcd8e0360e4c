// cmd/plottimings/list_commands.go
package plottimings

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// listCmd namespaces the listing subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List information about plottimings",
	Long:  `The 'list' command namespaces subcommands that describe the tool itself; on its own it prints nothing.`,
}

// commandsCmd implements 'list commands', which prints the command tree
// in an indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		listAllCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(listCmd)
}

// listAllCommands walks the tree under root and writes each command path
// and short description to w, padded into two columns.
func listAllCommands(w io.Writer, root *cobra.Command) {
	rows := collectCommandData(root, "", "")

	width := 0
	for _, r := range rows {
		width = max(width, len(r.path))
	}

	fmt.Fprintln(w, "Commands and Subcommands:")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s%s%s\n", r.path, strings.Repeat(" ", width-len(r.path)+2), r.description)
	}
}

type commandInfo struct {
	path        string
	description string
}

// collectCommandData flattens the command tree into path/description pairs,
// indenting each level by two spaces.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	rows := []commandInfo{{path: indent + fullPath, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		rows = append(rows, collectCommandData(sub, fullPath, indent+"  ")...)
	}
	return rows
}
