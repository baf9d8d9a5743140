package main

import (
	"fmt"

	"github.com/nabbar/cybercache/edition"
	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/logger/level"
	"github.com/nabbar/cybercache/parser"
	"github.com/nabbar/cybercache/persist"
	"github.com/nabbar/cybercache/types"
)

// registerAdminCommands wires the cluster's CLI surface into rt's command
// table. LOG, ROTATE, PING, INFO, STATS, SHUTDOWN act directly on this
// process's own collaborators; SET/GET/STORE/RESTORE/LOADCONFIG/CHECK are
// per-connection data-plane operations owned by the session/FPC reactor
// loops, not the admin channel, and are registered here only so
// Table.Enumerate reports the complete surface to a connected admin client.
func registerAdminCommands(rt *runtime) {
	t := rt.table

	t.Register("PING", func(args [][]byte) error {
		return nil
	})

	t.Register("LOG", func(args [][]byte) error {
		if len(args) == 0 {
			return errs.New(errs.InvalidArgument, "LOG: missing level argument")
		}
		lvl := level.Parse(string(args[0]))
		rt.log.SetLevel(lvl)
		return nil
	})

	t.Register("ROTATE", func(args [][]byte) error {
		if rt.cfg.BinlogDir == "" {
			return errs.New(errs.InvalidArgument, "ROTATE: no binlog directory configured")
		}
		_, err := persist.Rotate(rt.cfg.BinlogDir)
		return err
	})

	t.Register("INFO", func(args [][]byte) error {
		rt.log.Entry(level.InfoLevel, edition.FullVersionString(buildVersion, buildMode)).Log()
		return nil
	})

	t.Register("STATS", func(args [][]byte) error {
		for _, d := range []types.Domain{types.Global, types.Session, types.Fpc} {
			rt.log.Entry(level.InfoLevel, fmt.Sprintf("%s: used=%d quota=%d", d, rt.mem.Used(d), rt.mem.Quota(d))).Log()
		}
		return nil
	})

	t.Register("CHECK", notOnAdminChannel("CHECK"))
	t.Register("SET", notOnAdminChannel("SET"))
	t.Register("GET", notOnAdminChannel("GET"))
	t.Register("STORE", notOnAdminChannel("STORE"))
	t.Register("RESTORE", notOnAdminChannel("RESTORE"))
	t.Register("LOADCONFIG", notOnAdminChannel("LOADCONFIG"))

	t.Register("SHUTDOWN", func(args [][]byte) error {
		rt.shutdown()
		return nil
	})
}

func notOnAdminChannel(name string) parser.Handler {
	return func(args [][]byte) error {
		return errs.New(errs.InvalidArgument, name+": not served over the admin channel")
	}
}
