package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/saeidalz13/battleship-rules/api"
	"github.com/saeidalz13/battleship-rules/db"
	"github.com/saeidalz13/battleship-rules/db/sqlc"
	"github.com/saeidalz13/battleship-rules/internal/config"
	mb "github.com/saeidalz13/battleship-rules/models/battleship"
	mc "github.com/saeidalz13/battleship-rules/models/connection"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	var gameManagerOpts []mb.GameManagerOption
	if cfg.FleetRuleFile != "" {
		rule, err := config.LoadFleetRule(cfg.FleetRuleFile)
		if err != nil {
			panic(err)
		}
		log.Printf("enforcing fleet rule from %s: %v\n", cfg.FleetRuleFile, rule.Ships)
		gameManagerOpts = append(gameManagerOpts, mb.WithLayoutRule(rule))
	}

	// Games are played fully in memory; the database only keeps
	// analytics and the shot log, so it is optional in dev.
	var dbManager *sqlc.DbManager
	if cfg.DatabaseURL != "" {
		psqlDb := db.MustConnectToDb(cfg.DatabaseURL, cfg.MigrationDir)
		defer psqlDb.Close()
		dbManager = sqlc.NewDbManager(sqlc.New(psqlDb))
	} else {
		log.Println("DATABASE_URL not set; running without persistence")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionManager := mc.NewBattleshipSessionManager(cfg.SessionCleanupInterval)
	go sessionManager.CleanupPeriodically(ctx)

	rp := api.NewRequestProcessor(sessionManager, mb.NewBattleshipGameManager(gameManagerOpts...), dbManager)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	log.Printf("Listening to port %d (stage: %s)\n", cfg.Port, cfg.Stage)
	log.Fatalln(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Port), mux))
}
