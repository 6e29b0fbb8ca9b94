// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command scrapbook serves and curates the scrapbook.
//
// No business logic lives here; see internal/cli for the command tree.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/taibuivan/scrapbook/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
