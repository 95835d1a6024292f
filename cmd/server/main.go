package main

import (
	"flag"
	"fmt"
	"os"

	"hangar/internal/api"
	"hangar/internal/config"
	"hangar/internal/db"
	"hangar/internal/flash"
	"hangar/internal/fleet"
	"hangar/internal/metrics"
	"hangar/internal/parts"
	redisdb "hangar/internal/redis"
	"hangar/internal/user"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB error: %v\n", err)
		os.Exit(1)
	}

	rdb := redisdb.NewClient(cfg)

	deps := api.Deps{
		Cfg:     cfg,
		Redis:   rdb,
		Flash:   flash.NewStore(rdb),
		Users:   user.NewService(conn),
		Parts:   parts.NewService(conn),
		Fleet:   fleet.NewService(conn),
		Metrics: metrics.New(),
	}

	r := api.SetupRouter(deps)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
