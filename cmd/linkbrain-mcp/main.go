// linkbrain-mcp serves the Linkbrain bookmarking API as MCP tools.
//
// Usage:
//
//	linkbrain-mcp                      # serve over stdio
//	linkbrain-mcp -t http --addr :8080 # serve over HTTP
//	linkbrain-mcp tools                # list the tool catalog
//	linkbrain-mcp version
package main

import (
	"context"
	"os"

	"github.com/RobinCoderZhao/apibridge/internal/bridge"
	"github.com/RobinCoderZhao/apibridge/internal/linkbrain"
)

var version = "dev"

func main() {
	os.Exit(bridge.Execute(context.Background(), linkbrain.App(version), os.Args[1:], os.Stderr))
}
