package main

import (
	"konamid/cmd"
	"konamid/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
