package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
  pinCustomer - storefront and driver navigation services

  Usage:
    pincustomer -mode=<mode> [-config=<path>]

  Modes:
    storefront-service   pins, carts, orders HTTP API
    navigator-service    driver tracking and guidance over WebSocket

  Flags:
    -mode     application mode (required)
    -config   path to yaml config file (default configs/config.yaml)
    -help     print this message
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints a startup summary without credentials.
func PrintConfig(cfg *Config) {
	fmt.Printf("mode: %s\n", cfg.Mode)
	fmt.Printf("database: %s:%s/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	fmt.Printf("rabbitmq: %s:%s\n", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	fmt.Printf("routing: %s (%s)\n", cfg.Routing.BaseURL, cfg.Routing.Profile)
}
