// Package mqtt connects the brewhouse to its remote observers.
//
// Process variables are published retained under brauhaus/var/<name>;
// supervised writes come back on the matching /set and /override
// topics, and session events go out under brauhaus/event/. The broker
// (Mosquitto in the reference deployment) decouples the 1s control
// loop from dashboards and loggers.
//
// The client wraps paho with the daemon's conventions: auto-reconnect
// with backoff, subscription replay after a reconnect, and presence on
// brauhaus/system/status — a retained online message on connect, a
// graceful offline on Close, and an LWT crash marker if the process
// dies without one.
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllVarSets(), 1,
//	    func(topic string, payload []byte) error {
//	        // apply the supervised write
//	        return nil
//	    })
//
// TLS and broker credentials are required outside local development;
// payloads are plaintext beyond the transport.
package mqtt
