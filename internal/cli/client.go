package cli

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/config"
	"github.com/ai8future/lcrm/internal/httpcapture"
	"github.com/ai8future/lcrm/internal/lcrm"
)

// NewClient creates an LCRM API client from cfg. In verbose mode every
// request and response is also logged through logger.
func NewClient(cfg *config.Config, logger *slog.Logger) (*lcrm.Client, error) {
	opts := []lcrm.Option{
		lcrm.WithLogger(logger),
		lcrm.WithTimeout(cfg.Timeout()),
	}
	if cfg.Logging.Verbose {
		opts = append(opts, lcrm.WithHTTPClient(httpcapture.New(logger).Client()))
	}
	return lcrm.NewClient(cfg.APIKey, cfg.BaseURL, opts...)
}

// applyGlobalOptions lets --timeout-ms and --verbose override cfg for one run.
// A timeout that is not a positive number is ignored.
func applyGlobalOptions(cfg *config.Config, opts commands.Options) {
	if raw := opts.Get("timeout-ms"); raw != "" {
		if ms, err := strconv.ParseFloat(raw, 64); err == nil && ms > 0 {
			cfg.TimeoutMs = int(ms)
			if cfg.TimeoutMs == 0 {
				cfg.TimeoutMs = 1
			}
		}
	}
	if opts.Has("verbose") {
		switch strings.ToLower(opts.Get("verbose")) {
		case "false", "0", "no":
			cfg.Logging.Verbose = false
		default:
			cfg.Logging.Verbose = true
		}
	}
}

