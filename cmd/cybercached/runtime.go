package main

import (
	"context"
	"fmt"

	prmsdk "github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/cybercache/edition"
	"github.com/nabbar/cybercache/logger"
	"github.com/nabbar/cybercache/memdomain"
	"github.com/nabbar/cybercache/metrics"
	"github.com/nabbar/cybercache/parser"
	"github.com/nabbar/cybercache/persist"
	"github.com/nabbar/cybercache/reactor"
)

// buildVersion is the three-part wire/CLI version this binary reports; it
// tracks protocol changes in Major, feature changes in Minor.
var buildVersion = edition.Version{Major: 1, Minor: 0, Patch: 0}

var buildMode = edition.BuildMode{Edition: edition.Community, Subtype: edition.Normal}

// runtime bundles the long-lived collaborators a running cybercached
// process needs: memory accounting, the three reactor loops (session, FPC,
// admin), the admin command table, and the binlog rotation watcher.
type runtime struct {
	log logger.Logger
	mem *memdomain.Runtime
	rec *metrics.Recorder

	table *parser.Table

	session *reactor.Processor
	fpc     *reactor.Processor
	admin   *reactor.Processor

	watch *persist.RotationWatcher

	cfg *serverConfig
}

func newRuntime(ctx context.Context, cfg *serverConfig) (*runtime, error) {
	log, err := logger.NewFrom(ctx, &cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("cybercached: building logger: %w", err)
	}

	rt := &runtime{
		log: log,
		mem: memdomain.NewRuntime(),
		rec: metrics.NewRecorder(prmsdk.DefaultRegisterer),
		cfg: cfg,
	}

	rt.mem.SetMetricsHook(rt.rec)
	rt.mem.SetLogger(rt.log)
	cfg.Quota.apply(rt)

	rt.table = parser.NewTable()
	rt.table.SetLogger(rt.log)
	registerAdminCommands(rt)

	rt.session, err = reactor.NewProcessor()
	if err != nil {
		return nil, fmt.Errorf("cybercached: session reactor: %w", err)
	}
	rt.session.SetLogger(rt.log)

	rt.fpc, err = reactor.NewProcessor()
	if err != nil {
		return nil, fmt.Errorf("cybercached: fpc reactor: %w", err)
	}
	rt.fpc.SetLogger(rt.log)

	rt.admin, err = reactor.NewProcessor()
	if err != nil {
		return nil, fmt.Errorf("cybercached: admin reactor: %w", err)
	}
	rt.admin.SetLogger(rt.log)

	if cfg.BinlogDir != "" {
		rt.watch, err = persist.WatchDirectory(cfg.BinlogDir)
		if err != nil {
			return nil, fmt.Errorf("cybercached: watching binlog directory: %w", err)
		}
	}

	go rt.runLoop(rt.session)
	go rt.runLoop(rt.fpc)
	go rt.runLoop(rt.admin)

	return rt, nil
}

// runLoop drains one reactor's events until Wait reports the processor is
// shut down; Processor itself logs a Wait failure before returning it here.
// Connection accept/read/write dispatch against the returned events is
// pipeline.ReaderWriter's job, wired in once a service's listening socket
// is registered; this loop only keeps the epoll wait cycle alive.
func (r *runtime) runLoop(p *reactor.Processor) {
	for {
		events, err := p.Wait(-1)
		if err != nil {
			return
		}
		for range events {
			// event dispatch to pipeline.ReaderWriter happens here once a
			// listening socket is wired in; nothing is registered yet on a
			// freshly started runtime beyond the wakeup fd.
		}
	}
}

func (r *runtime) shutdown() {
	if r.watch != nil {
		_ = r.watch.Close()
	}
	_ = r.session.Shutdown()
	_ = r.fpc.Shutdown()
	_ = r.admin.Shutdown()
	_ = r.log.Close()
}
