//go:build !(tinygo && bootdebug)

package app

import "ticker/hal"

func bootDiagSetStep(string) {}

func bootDiagStart(hal.HAL) {}
