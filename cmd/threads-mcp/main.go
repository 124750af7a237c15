// threads-mcp serves the Meta Threads API as MCP tools.
//
// Usage:
//
//	threads-mcp                      # serve over stdio
//	threads-mcp -t http --addr :8080 # serve over HTTP
//	threads-mcp tools                # list the tool catalog
//	threads-mcp version
package main

import (
	"context"
	"os"

	"github.com/RobinCoderZhao/apibridge/internal/bridge"
	"github.com/RobinCoderZhao/apibridge/internal/threads"
)

var version = "dev"

func main() {
	os.Exit(bridge.Execute(context.Background(), threads.App(version), os.Args[1:], os.Stderr))
}
