//go:build tinygo

package main

import (
	"ticker/app"
	"ticker/hal"
)

func main() {
	app.Run(hal.New())
}

