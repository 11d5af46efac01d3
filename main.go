package main

import (
	"github.com/Jananikaavya/Library-Management/internal/config"
	"github.com/Jananikaavya/Library-Management/internal/entrypoint"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
