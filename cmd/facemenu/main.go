package main

import (
	"log"

	"tableflip.dev/facemenu/pkg/commands"
	"tableflip.dev/facemenu/pkg/logging"
)

func main() {
	err := commands.New().Execute()
	_ = logging.Close()
	if err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
