package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	logcfg "github.com/nabbar/cybercache/logger/config"
	"github.com/nabbar/cybercache/types"
)

// quotaConfig holds the per-domain memory ceilings read from the config
// file; zero means unbounded (no quota enforced for that domain).
type quotaConfig struct {
	Global  int64
	Session int64
	Fpc     int64
}

// serverConfig is the bootstrap configuration this binary needs before the
// reactor loops can start: where to listen, the logger options, and the
// memory quotas handed to memdomain.Runtime.
type serverConfig struct {
	SessionListen string
	FpcListen     string
	AdminListen   string

	BinlogDir string

	Quota quotaConfig

	Logger logcfg.Options
}

func defaultViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("CYBERCACHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen.session", "127.0.0.1:8120")
	v.SetDefault("listen.fpc", "127.0.0.1:8121")
	v.SetDefault("listen.admin", "127.0.0.1:8122")
	v.SetDefault("persist.binlogDir", "./binlog")
	v.SetDefault("quota.global", int64(0))
	v.SetDefault("quota.session", int64(0))
	v.SetDefault("quota.fpc", int64(0))

	return v
}

func loadConfig(v *viper.Viper, path string) (*serverConfig, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cybercached: reading config %q: %w", path, err)
		}
	}

	cfg := &serverConfig{
		SessionListen: v.GetString("listen.session"),
		FpcListen:     v.GetString("listen.fpc"),
		AdminListen:   v.GetString("listen.admin"),
		BinlogDir:     v.GetString("persist.binlogDir"),
		Quota: quotaConfig{
			Global:  v.GetInt64("quota.global"),
			Session: v.GetInt64("quota.session"),
			Fpc:     v.GetInt64("quota.fpc"),
		},
	}

	if sub := v.Sub("log"); sub != nil {
		if err := sub.Unmarshal(&cfg.Logger); err != nil {
			return nil, fmt.Errorf("cybercached: decoding log config: %w", err)
		}
	}

	return cfg, nil
}

// apply pushes the configured per-domain ceilings into rt, skipping
// domains left at zero (unbounded).
func (c quotaConfig) apply(rt *runtime) {
	if c.Global > 0 {
		rt.mem.SetQuota(types.Global, c.Global)
	}
	if c.Session > 0 {
		rt.mem.SetQuota(types.Session, c.Session)
	}
	if c.Fpc > 0 {
		rt.mem.SetQuota(types.Fpc, c.Fpc)
	}
}
