package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd, app := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if app.logger != nil {
			app.logger.Error("command failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
			_ = app.logger.Sync()
		} else {
			fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		}
		os.Exit(1)
	}
}
