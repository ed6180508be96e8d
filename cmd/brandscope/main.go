package main

import (
	"context"

	"brandscope/cmd/brandscope/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
