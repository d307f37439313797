package app

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"

	"rf433/pkg/protocol"
	"rf433/pkg/transmitter"
)

// runWebServer starts the applications web server and listens for web requests.
//  It's designed to run in a separate go function to not block the main go function.
//  e.g.: go runWebServer()
//  See app.Run()
func (app *App) runWebServer() {
	err := app.web.Listen(app.urlParsed.Host)
	debug.ErrorLog.Print(err)
}

// HandleCode is the get latest received code web handler.
// The snapshot read never blocks the decoder.
func (app *App) HandleCode() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request code")

		if app.receiver == nil {
			ctx.Status(http.StatusServiceUnavailable)
			return ctx.JSON(fiber.Map{"error": "no receiver configured"})
		}

		return ctx.JSON(app.receiver.LatestCode())
	}
}

// HandleTransmit is the send code web handler. The request body carries
// a transmitter request; fields left out fall back to the configured
// transmitter defaults. The call returns after the last repeat is sent.
func (app *App) HandleTransmit() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request transmit")

		if app.transmitter == nil {
			ctx.Status(http.StatusServiceUnavailable)
			return ctx.JSON(fiber.Map{"success": false, "error": "no transmitter configured"})
		}

		var r transmitter.Request
		if err := ctx.BodyParser(&r); err != nil {
			ctx.Status(http.StatusBadRequest)
			return ctx.JSON(fiber.Map{"success": false, "error": err.Error()})
		}

		app.applyTransmitDefaults(&r)

		if err := app.transmitter.Transmit(r); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, transmitter.ErrInvalidCode) ||
				errors.Is(err, transmitter.ErrInvalidBitLength) ||
				errors.Is(err, transmitter.ErrInvalidRepeat) ||
				errors.Is(err, transmitter.ErrInvalidPulseLength) ||
				errors.Is(err, protocol.ErrInvalidProtocol) {
				status = http.StatusBadRequest
			}

			ctx.Status(status)
			return ctx.JSON(fiber.Map{"success": false, "error": err.Error()})
		}

		return ctx.JSON(fiber.Map{"success": true})
	}
}

// applyTransmitDefaults fills unset request fields from the transmitter
// configuration. Remaining zero fields fall back to the package defaults.
func (app *App) applyTransmitDefaults(r *transmitter.Request) {
	cfg := app.config.Transmitter

	if r.Protocol == 0 {
		r.Protocol = cfg.Protocol
	}
	if r.PulseLength == 0 {
		r.PulseLength = cfg.PulseLength
	}
	if r.BitLength == 0 {
		r.BitLength = cfg.BitLength
	}
	if r.Repeat == 0 {
		r.Repeat = cfg.Repeat
	}
}
