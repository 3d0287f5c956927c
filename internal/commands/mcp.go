package commands

import (
	"github.com/promptship/promptship/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the promptship MCP server over stdio",
	Long:  "Expose generate_project, create_repository, push_files and register_deployment as MCP tools. Credentials are read from GEMINI_API_KEY, GITHUB_TOKEN and VERCEL_TOKEN.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.Run(cmd.Context())
	},
}
