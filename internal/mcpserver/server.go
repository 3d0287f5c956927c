// Package mcpserver exposes the promptship clients as MCP tools over
// stdio, so agent hosts can generate and provision projects directly.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run starts the promptship MCP server over stdio.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "promptship",
			Version: "v1.0.0",
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_project",
		Description: "Generate a small web project from a natural-language prompt. Returns the project name, description, and the full list of files with their content.",
	}, handleGenerateProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_repository",
		Description: "Create a GitHub repository under the authenticated account. A name collision is treated as success and the existing repository's URL is returned.",
	}, handleCreateRepository)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "push_files",
		Description: "Push an ordered list of files to a GitHub repository, one commit per file. Stops at the first failed upload.",
	}, handlePushFiles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "register_deployment",
		Description: "Register a GitHub repository as a Vercel project so pushes trigger deployments.",
	}, handleRegisterDeployment)

	return server.Run(ctx, &mcp.StdioTransport{})
}
