//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"ticker/app"
	"ticker/hal"
	"ticker/internal/buildinfo"
)

func main() {
	var cfg hal.HeadlessConfig
	var host hal.HostConfig
	appCfg := app.DefaultConfig()
	intensity := uint(appCfg.Intensity)

	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 1000, "Step rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ms in headless mode (0 = run forever).")
	flag.StringVar(&host.Port, "port", "", "Serial device carrying messages (default: stdin/stdout).")
	flag.IntVar(&host.Baud, "baud", 115200, "Serial baud rate.")
	flag.StringVar(&host.SPI, "spi", "", "SPI port driving a real MAX7219 chain (default: simulated).")
	flag.StringVar(&host.LEDChip, "led-chip", "", "GPIO chip for the heartbeat LED (e.g. gpiochip0).")
	flag.IntVar(&host.LEDLine, "led-line", 0, "GPIO line offset for the heartbeat LED.")
	flag.IntVar(&appCfg.Digits, "digits", appCfg.Digits, "Number of chained 8x8 modules.")
	flag.Uint64Var(&appCfg.ScrollTicks, "scroll-ms", appCfg.ScrollTicks, "Scroll step period in ms.")
	flag.Uint64Var(&appCfg.SelfTestTicks, "self-test-ms", appCfg.SelfTestTicks, "Display test duration at boot (0 = skip).")
	flag.UintVar(&intensity, "intensity", intensity, "MAX7219 intensity (0-15).")
	showVersion := flag.Bool("version", false, "Print the build identifier and exit.")
	flag.Parse()

	if *showVersion {
		fmt.Println("ticker " + buildinfo.String())
		return
	}

	if intensity > 0x0F {
		intensity = 0x0F
	}
	appCfg.Intensity = uint8(intensity)
	host.Digits = appCfg.Digits

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, host, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
