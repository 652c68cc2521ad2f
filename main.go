package main

import (
	"os"

	"github.com/mattsolo1/grove-textpad/cmd"
	"github.com/mattsolo1/grove-textpad/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := cmd.NewRootCmd(&svc)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
