package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/anicoll/taspromto/cmd"
)

func main() {
	app := &cli.App{
		Name:   "taspromto",
		Usage:  "exposes home telemetry published over mqtt as prometheus metrics",
		Action: cmd.TaspromtoCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "mqtt-host",
				EnvVars:  []string{"MQTT_HOSTNAME"},
				Required: true,
			},
			&cli.IntFlag{
				Name:    "mqtt-port",
				EnvVars: []string{"MQTT_PORT"},
				Value:   1883,
			},
			&cli.StringFlag{
				Name:    "mqtt-user",
				EnvVars: []string{"MQTT_USERNAME"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-pass",
				EnvVars: []string{"MQTT_PASSWORD"},
				Value:   "",
			},
			&cli.IntFlag{
				Name:    "listen-port",
				EnvVars: []string{"PORT"},
				Value:   9185,
			},
			&cli.StringFlag{
				Name:    "mitemp-names",
				Usage:   "comma separated mac-suffix=label pairs, e.g. 351234=Bedroom",
				EnvVars: []string{"MITEMP_NAMES"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "rf-names",
				Usage:   "comma separated model:id:channel=label pairs, e.g. Bresser-3CH:73:1=Front Yard",
				EnvVars: []string{"RF_NAMES"},
				Value:   "",
			},
			&cli.DurationFlag{
				Name:    "poll-interval",
				Usage:   "how often to ask the tasmota group topic to republish state",
				EnvVars: []string{"POLL_INTERVAL"},
				Value:   5 * time.Minute,
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "INFO",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
