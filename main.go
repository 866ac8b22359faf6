// Package main is the entry point for the videoflix terminal client.
package main

import (
	"github.com/samber/lo"
	"github.com/videoflix/videoflix/cmd"
	"github.com/videoflix/videoflix/config"
	"github.com/videoflix/videoflix/internal/cache"
	"github.com/videoflix/videoflix/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
