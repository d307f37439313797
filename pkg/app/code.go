package app

import (
	"encoding/json"

	"github.com/womat/debug"

	"rf433/pkg/mqtt"
	"rf433/pkg/receiver"
)

// publishCodes forwards every committed code to the mqtt broker.
// It ends when the decoder is closed.
func (app *App) publishCodes() {
	for code := range app.receiver.C {
		debug.DebugLog.Printf("received code %v", code.Value)
		app.sendMQTT(app.config.MQTT.Topic, code)
	}
}

// sendMQTT send message struct to the mqtt broker.
func (app *App) sendMQTT(topic string, code receiver.Code) {
	debug.TraceLog.Printf("prepare mqtt message %v %v", topic, code)

	b, err := json.MarshalIndent(code, "", "  ")
	if err != nil {
		debug.ErrorLog.Printf("sendMQTT marshal: %v", err)
		return
	}

	app.mqtt.C <- mqtt.Message{
		Qos:      0,
		Retained: true,
		Topic:    topic,
		Payload:  b,
	}
}
