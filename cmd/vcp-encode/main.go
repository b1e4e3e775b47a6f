package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/portablecontext/vcp-engine/internal/audit"
	"github.com/portablecontext/vcp-engine/internal/config"
	"github.com/portablecontext/vcp-engine/internal/token"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region main

func main() {
	contextPath := flag.String("context", "", "path to context JSON file")
	configPath := flag.String("config", envOr("VCP_CONFIG", ""), "optional TOML config with decay overrides")
	auditPath := flag.String("audit", "", "optional SQLite path; logs the transmission")
	platformID := flag.String("platform", "", "platform identifier recorded in the audit trail")
	wire := flag.Bool("wire", false, "emit wire form instead of CSM-1 lines")
	box := flag.Bool("box", false, "emit the boxed display form")
	flag.Parse()

	if *contextPath == "" {
		fmt.Fprintln(os.Stderr, "usage: vcp-encode --context path/to/context.json [--config vcp.toml] [--audit audit.db] [--platform id] [--wire|--box]")
		os.Exit(2)
	}

	ctx, err := loadContext(*contextPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load context: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	applyDecayOverrides(&ctx, cfg)

	now := time.Now().UTC()
	encoded := token.Encode(ctx, now)
	if encoded == "" {
		fmt.Fprintln(os.Stderr, "context has no constitution id, nothing to encode")
		os.Exit(1)
	}

	switch {
	case *wire:
		fmt.Println(token.ToWire(ctx, now))
	case *box:
		fmt.Println(token.FormatForDisplay(encoded))
	default:
		fmt.Println(encoded)
	}

	if *auditPath != "" {
		if err := logTransmission(*auditPath, ctx, *platformID); err != nil {
			fmt.Fprintf(os.Stderr, "audit: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region context

func loadContext(path string) (vcp.VCPContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vcp.VCPContext{}, err
	}
	var ctx vcp.VCPContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return vcp.VCPContext{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return ctx, nil
}

// applyDecayOverrides attaches configured decay policies to dimensions
// that do not carry an explicit one of their own.
func applyDecayOverrides(ctx *vcp.VCPContext, cfg config.Config) {
	if ctx.PersonalState == nil || len(cfg.DecayPolicies) == 0 {
		return
	}
	for _, key := range vcp.DimensionOrder {
		dim := ctx.PersonalState.Dimension(key)
		if dim == nil || dim.DecayPolicy != nil {
			continue
		}
		if policy, ok := cfg.DecayPolicies[key]; ok {
			p := policy
			dim.DecayPolicy = &p
		}
	}
}

// #endregion context

// #region audit

func logTransmission(path string, ctx vcp.VCPContext, platformID string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	store, err := audit.NewStore(path, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	summary := token.Summarize(ctx)
	_, err = store.Log(audit.Entry{
		EventType:               audit.EventContextShared,
		ProfileID:               ctx.ProfileID,
		PlatformID:              platformID,
		DataShared:              summary.Transmitted,
		DataWithheld:            summary.Withheld,
		PrivateFieldsInfluenced: len(summary.Withheld),
		Reason:                  "token transmission",
	})
	return err
}

// #endregion audit

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
