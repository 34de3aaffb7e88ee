// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/GalaxySciTech/bbb-liquiditystaking/api"
	"github.com/GalaxySciTech/bbb-liquiditystaking/log"
	"github.com/GalaxySciTech/bbb-liquiditystaking/metrics"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")

	// poolAddr is the well-known account holding pool state and funds.
	poolAddr = xdc.BytesToAddress([]byte("bbb-staking-pool"))
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "bbbstaking",
		Usage:     "Pooled liquid staking engine for XDC",
		Copyright: "2025 The bbb-liquiditystaking developers",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiLogsLimitFlag,
			adminAddrFlag,
			enableAdminFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			pprofFlag,
			verbosityFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	genesisPath := ctx.String(genesisFlag.Name)
	if genesisPath == "" {
		fatalf("missing genesis config, use -%s to specify one", genesisFlag.Name)
	}
	config, err := LoadGenesisConfig(genesisPath)
	if err != nil {
		fatal(err)
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	instanceDir := makeInstanceDir(ctx)

	stateDB := openStateDB(instanceDir)
	defer func() { logger.Info("closing state database..."); stateDB.Close() }()

	logDB := openLogDB(instanceDir)
	defer func() { logger.Info("closing event database..."); logDB.Close() }()

	st := state.New(stateDB)
	rt := runtime.New(st, poolAddr, runtime.WithSink(logDB))
	p := pool.New(rt, poolAddr)

	if err := config.Seed(st, p); err != nil {
		fatalf("seed genesis state: %v", err)
	}

	logAPIRequests := new(atomic.Bool)
	logAPIRequests.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(p, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: logAPIRequests,
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})

	apiURL, apiCancel, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		fatal(err)
	}
	defer func() { logger.Info("stopping API server..."); apiCancel() }()

	if ctx.Bool(enableAdminFlag.Name) {
		adminURL, adminCancel, err := api.NewAdmin(ctx.String(adminAddrFlag.Name), log.RootLevel(), logAPIRequests).Start()
		if err != nil {
			fatal(err)
		}
		defer func() { logger.Info("stopping admin server..."); adminCancel() }()
		logger.Info("admin server started", "url", adminURL)
	}

	printStartupMessage(instanceDir, apiURL)

	<-handleExitSignal()
	logger.Info("shutting down...")
	return nil
}

func printStartupMessage(instanceDir, apiURL string) {
	fmt.Printf(`Starting %v
    Version     %v
    Pool        %v
    Instance    %v
    API portal  %v
`,
		"bbbstaking",
		fullVersion(),
		poolAddr,
		instanceDir,
		apiURL,
	)
}
