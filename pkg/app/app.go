package app

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"

	"rf433/pkg/app/config"
	"rf433/pkg/mqtt"
	"rf433/pkg/protocol"
	"rf433/pkg/pulse"
	"rf433/pkg/raspberry"
	"rf433/pkg/receiver"
	"rf433/pkg/transmitter"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// urlParsed contains the parsed Config.Url parameter
	// and makes it easier to get params out of e.g.
	// url: https://0.0.0.0:7844/?minTls=1.2&bodyLimit=50MB
	urlParsed *url.URL

	// mqtt is the handler to the mqtt broker
	mqtt *mqtt.Handler

	// chip is the gpiod handle delivering receiver edge events
	chip *raspberry.Chip
	// line is the requested receiver input line
	line *raspberry.Line
	// mem is the memory mapped gpio handle for the transmitter pin
	mem *raspberry.Mem

	// receiver decodes the edge events of the receiver line
	receiver *receiver.Handler
	// transmitter keys the transmitter pin
	transmitter *transmitter.Handler

	// restart signals application restart
	restart chan struct{}
	// shutdown signals application shutdown
	shutdown chan struct{}
}

// New checks the Web server URL and initialize the main app structure
func New(config *config.Config) (*App, error) {
	u, err := url.Parse(config.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", config.Webserver.URL, err.Error())
		return &App{}, err
	}

	return &App{
		config:    config,
		urlParsed: u,

		web:  fiber.New(),
		mqtt: mqtt.New(),

		restart:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}, err
}

// Run starts the application.
func (app *App) Run() error {
	if err := app.init(); err != nil {
		return err
	}

	go app.mqtt.Service()
	go app.runWebServer()

	if app.receiver != nil {
		go app.publishCodes()
	}

	return nil
}

// init acquires the configured pins and starts the codec tasks.
func (app *App) init() (err error) {
	if app.config.Receiver.Gpio != 0 {
		if err = app.initReceiver(); err != nil {
			return err
		}
	}

	if app.config.Transmitter.Gpio != 0 {
		if err = app.initTransmitter(); err != nil {
			return err
		}
	}

	if err = app.mqtt.Connect(app.config.MQTT.Connection); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker %v", err)
		return err
	}

	// initDefaultRoutes should be always called last because it may access
	// things like app.receiver which must be initialized before
	app.initDefaultRoutes()

	return nil
}

// initReceiver requests the receiver line and starts its decoder.
func (app *App) initReceiver() (err error) {
	cfg := app.config.Receiver

	if app.chip, err = raspberry.Open(); err != nil {
		debug.ErrorLog.Printf("can't open gpio chip: %v", err)
		return err
	}

	if app.line, err = app.chip.NewLine(cfg.Gpio, cfg.Terminator); err != nil {
		debug.ErrorLog.Printf("can't open line %v: %v", cfg.Gpio, err)
		return err
	}

	p, err := protocol.Get(cfg.Protocol)
	if err != nil {
		return err
	}

	app.receiver = receiver.New(app.line.C, pulse.NewClassifier(p, cfg.PulseLength, cfg.Tolerance))
	debug.InfoLog.Printf("receiving on gpio %v, protocol %v", cfg.Gpio, cfg.Protocol)
	return nil
}

// initTransmitter claims the transmitter pin.
func (app *App) initTransmitter() (err error) {
	cfg := app.config.Transmitter

	if app.mem, err = raspberry.OpenMem(); err != nil {
		debug.ErrorLog.Printf("can't open gpio memory: %v", err)
		return err
	}

	pin, err := app.mem.NewOutputPin(cfg.Gpio)
	if err != nil {
		debug.ErrorLog.Printf("can't open pin %v: %v", cfg.Gpio, err)
		return err
	}

	app.transmitter = transmitter.New(pin)
	debug.InfoLog.Printf("transmitting on gpio %v, protocol %v", cfg.Gpio, cfg.Protocol)
	return nil
}

// Restart returns the read only restart channel.
// Restart is used to be able to react on application restart. (see cmd/main.go)
func (app *App) Restart() <-chan struct{} {
	return app.restart
}

// Shutdown returns the read only shutdown channel.
// Shutdown is used to be able to react on application shutdown. (see cmd/main.go)
func (app *App) Shutdown() <-chan struct{} {
	return app.shutdown
}

// Close stops the codec tasks first so both pins are released and the
// transmitter pin is left low, then disconnects the collaborators.
func (app *App) Close() error {
	if app.transmitter != nil {
		_ = app.transmitter.Close()
	}
	if app.line != nil {
		_ = app.line.Close()
	}
	if app.receiver != nil {
		_ = app.receiver.Close()
	}

	if app.mqtt != nil {
		_ = app.mqtt.Disconnect()
	}

	if app.chip != nil {
		_ = app.chip.Close()
	}
	if app.mem != nil {
		_ = app.mem.Close()
	}

	return nil
}
