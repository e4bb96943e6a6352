package main

import (
	"context"
	"os"

	"github.com/platinummonkey/vlint/pkg/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
