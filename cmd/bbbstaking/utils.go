// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/GalaxySciTech/bbb-liquiditystaking/co"
	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/log"
	"github.com/GalaxySciTech/bbb-liquiditystaking/logdb"
)

func fatal(args ...any) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fatal(fmt.Sprintf(format, args...))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bbbstaking")
}

func initLogger(ctx *cli.Context) {
	level, ok := log.ParseLevel(ctx.String(verbosityFlag.Name))
	if !ok {
		fatalf("invalid verbosity: %q", ctx.String(verbosityFlag.Name))
	}
	log.RootLevel().Set(level)

	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetRoot(slog.New(log.NewTerminalHandler(os.Stderr, log.RootLevel(), useColor)))
}

func makeInstanceDir(ctx *cli.Context) string {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		fatalf("create data dir at '%v': %v", dir, err)
	}
	return dir
}

func openStateDB(instanceDir string) kv.Store {
	dir := filepath.Join(instanceDir, "state.db")
	db, err := kv.NewLevelDB(dir, 128, 512)
	if err != nil {
		fatalf("open state database at '%v': %v", dir, err)
	}
	return db
}

func openLogDB(instanceDir string) *logdb.LogDB {
	path := filepath.Join(instanceDir, "events.db")
	db, err := logdb.New(path)
	if err != nil {
		fatalf("open event database at '%v': %v", path, err)
	}
	return db
}

func startAPIServer(addr string, handler http.HandlerFunc) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	var goes co.Goes
	goes.Go(func() {
		server.Serve(listener)
	})

	cancel := func() {
		server.Close()
		goes.Wait()
	}
	return "http://" + listener.Addr().String() + "/", cancel, nil
}

func handleExitSignal() chan os.Signal {
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	return exit
}
