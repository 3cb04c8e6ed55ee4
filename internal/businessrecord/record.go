// Package businessrecord implements lcrm-business-record: finding the customer a
// sales follow-up belongs to and filing the follow-up as a business record.
package businessrecord

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ai8future/lcrm/internal/cli"
	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/lcrm"
)

// Action names one lcrm-business-record subcommand.
type Action string

const (
	ActionFindCustomer   Action = "find-customer"
	ActionCustomerDetail Action = "customer-detail"
	ActionCreate         Action = "create"
)

// Actions lists every action in usage order.
var Actions = []Action{ActionFindCustomer, ActionCustomerDetail, ActionCreate}

// Handler returns the handler for a.
func Handler(a Action) (cli.HandlerFunc, bool) {
	switch a {
	case ActionFindCustomer:
		return findCustomer, true
	case ActionCustomerDetail:
		return customerDetail, true
	case ActionCreate:
		return create, true
	}
	return nil, false
}

// DefaultFindLimit caps find-customer results unless --limit is given.
const DefaultFindLimit = "5"

func findCustomer(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	name, err := opts.Require("company-name")
	if err != nil {
		return nil, err
	}
	extra, err := commands.QueryOption(opts, "query")
	if err != nil {
		return nil, err
	}

	q := lcrm.Query{
		{Key: "companyName", Value: name},
		{Key: "limit", Value: opts.GetOr("limit", DefaultFindLimit)},
	}
	return c.Do(ctx, lcrm.Request{
		Method: http.MethodGet,
		Path:   "/api/customers",
		Query:  append(q, extra...),
	})
}

// customerDetail returns the customer with its contacts, opportunities and records.
func customerDetail(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	id, err := opts.Require("customer-id")
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, lcrm.Request{
		Method: http.MethodGet,
		Path:   "/api/customers/" + url.PathEscape(id),
	})
}

func create(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	body, err := buildCreateBody(opts)
	if err != nil {
		return nil, err
	}
	if err := ValidateCreate(body); err != nil {
		return nil, err
	}
	return c.Do(ctx, lcrm.Request{
		Method: http.MethodPost,
		Path:   "/api/business-records",
		Body:   body,
	})
}
