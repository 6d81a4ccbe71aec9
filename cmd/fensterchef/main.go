// Command fensterchef starts the window manager: open the display,
// claim window-manager ownership, load configuration, then run the
// single-threaded event loop until QUIT (spec §6, grounded on
// original_source/src/main.c's init-then-loop-then-quit shape).
package main

import (
	"flag"
	"fmt"
	"os"

	fclog "github.com/JulianBMW/fensterchef/internal/log"
	"github.com/JulianBMW/fensterchef/internal/wm"
	"github.com/JulianBMW/fensterchef/internal/x11"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		debug      = flag.Bool("debug", false, "enable debug logging")
		display    = flag.String("display", "", "X display name (defaults to $DISPLAY)")
		configPath = flag.String("config", defaultConfigPath(), "path to the configuration file")
	)
	flag.Parse()

	logger := fclog.New(*debug)
	log := logger.WithField("system", "main")

	conn, err := x11.Connect(*display, logger)
	if err != nil {
		log.WithError(err).Error("fensterchef: fatal startup failure")
		return 1
	}
	defer conn.Close()

	state := wm.New(conn, logger)
	if err := state.Init(*configPath); err != nil {
		log.WithError(err).Error("fensterchef: fatal startup failure")
		return 1
	}

	if err := state.Run(); err != nil {
		log.WithError(err).Error("fensterchef: event loop exited with error")
		return 1
	}
	return 0
}

// defaultConfigPath follows original_source's reload_user_configuration
// path shape ($HOME/.config/fensterchef/...), with the TOML extension
// internal/config's BurntSushi/toml loader actually expects.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s/.config/fensterchef/fensterchef.toml", home)
}
