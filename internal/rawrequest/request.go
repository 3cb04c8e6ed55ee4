// Package rawrequest implements lcrm-request, which sends an arbitrary request
// to the CRM API with the shared authentication and output handling.
package rawrequest

import (
	"context"
	"net/http"
	"strings"

	"github.com/ai8future/lcrm/internal/cli"
	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/lcrm"
)

// Run builds the request from --method, --path, --query and --body/--body-file.
func Run(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	query, err := commands.QueryOption(opts, "query")
	if err != nil {
		return nil, err
	}
	body, err := commands.ReadJSONOption(opts, "body")
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, lcrm.Request{
		Method: strings.ToUpper(opts.GetOr("method", http.MethodGet)),
		Path:   opts.Get("path"),
		Query:  query,
		Body:   body,
	})
}

const examples = `  lcrm-request --method GET --path /api/customers --query companyName=朗致 --query limit=5
  lcrm-request --method POST --path /api/business-records --body '{"customerId":"..."}'
  lcrm-request --method POST --path /api/business-records --body-file /tmp/payload.json`

// Program describes the lcrm-request binary.
func Program(version string) cli.Program {
	return cli.Program{
		Name:            "lcrm-request",
		Short:           "Send any request to the LCRM API",
		Version:         version,
		Example:         examples,
		Options:         "--path <path> [--method <method>] [--query key=value]... [--body <json> | --body-file <path>]",
		RequiredOptions: []string{"path"},
		Run:             Run,
	}
}
