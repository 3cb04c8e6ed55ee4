// Package search implements the read-only lookups of lcrm-search: customers,
// business records, opportunities, users, tags, notifications and itineraries.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/cli"
	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/ctxlog"
	"github.com/ai8future/lcrm/internal/filter"
	"github.com/ai8future/lcrm/internal/lcrm"
)

// Action names one lcrm-search subcommand.
type Action string

const (
	ActionMe                      Action = "me"
	ActionCustomers               Action = "customers"
	ActionCustomerDetail          Action = "customer-detail"
	ActionCustomerBusinessRecords Action = "customer-business-records"
	ActionBusinessRecords         Action = "business-records"
	ActionCustomerOpportunities   Action = "customer-opportunities"
	ActionCustomerContacts        Action = "customer-contacts"
	ActionLeads                   Action = "leads"
	ActionTags                    Action = "tags"
	ActionUsers                   Action = "users"
	ActionSalesPresalesUsers      Action = "sales-presales-users"
	ActionOpportunities           Action = "opportunities"
	ActionNotifications           Action = "notifications"
	ActionPresalesItineraries     Action = "presales-itineraries"
)

// Actions lists every action in usage order.
var Actions = []Action{
	ActionMe,
	ActionCustomers,
	ActionCustomerDetail,
	ActionCustomerBusinessRecords,
	ActionBusinessRecords,
	ActionCustomerOpportunities,
	ActionCustomerContacts,
	ActionLeads,
	ActionTags,
	ActionUsers,
	ActionSalesPresalesUsers,
	ActionOpportunities,
	ActionNotifications,
	ActionPresalesItineraries,
}

// Handler returns the handler for a.
func Handler(a Action) (cli.HandlerFunc, bool) {
	switch a {
	case ActionMe:
		return me, true
	case ActionCustomers:
		return customers, true
	case ActionCustomerDetail, ActionCustomerContacts:
		return customerDetail, true
	case ActionCustomerBusinessRecords:
		return customerBusinessRecords, true
	case ActionBusinessRecords:
		return businessRecords, true
	case ActionCustomerOpportunities:
		return customerOpportunities, true
	case ActionLeads:
		return listWithQuery("/api/leads"), true
	case ActionTags:
		return tags, true
	case ActionUsers:
		return users, true
	case ActionSalesPresalesUsers:
		return salesPresalesUsers, true
	case ActionOpportunities:
		return listWithQuery("/api/opportunities/list"), true
	case ActionNotifications:
		return notifications, true
	case ActionPresalesItineraries:
		return presalesItineraries, true
	}
	return nil, false
}

const (
	pathMe                 = "/api/auth/me"
	pathCustomers          = "/api/customers"
	pathBusinessRecords    = "/api/business-records"
	pathOpportunities      = "/api/opportunities/list"
	pathTags               = "/api/tags"
	pathUsers              = "/api/users"
	pathSalesPresalesUsers = "/api/users/sales-presales"
	pathNotifications      = "/api/notifications"
	pathWeekItineraries    = "/api/presales-itineraries/week"
)

func customerPath(id string) string {
	return pathCustomers + "/" + url.PathEscape(id)
}

// baseQuery starts a query with the raw --query pairs.
func baseQuery(opts commands.Options) (lcrm.Query, error) {
	return commands.QueryOption(opts, "query")
}

// addOptions appends each option that is set, under its query name, in order.
func addOptions(q *lcrm.Query, opts commands.Options, pairs ...[2]string) {
	for _, p := range pairs {
		q.AddIf(p[1], opts.Get(p[0]))
	}
}

func get(ctx context.Context, c *lcrm.Client, path string, q lcrm.Query) (*lcrm.Result, error) {
	return c.Do(ctx, lcrm.Request{Method: http.MethodGet, Path: path, Query: q})
}

func me(ctx context.Context, c *lcrm.Client, _ commands.Options) (*lcrm.Result, error) {
	return get(ctx, c, pathMe, nil)
}

func customers(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	q, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	addOptions(&q, opts,
		[2]string{"company-name", "companyName"},
		[2]string{"page", "page"},
		[2]string{"limit", "limit"},
	)
	return get(ctx, c, pathCustomers, q)
}

// customerDetail serves customer-detail and customer-contacts; contacts are
// part of the customer record.
func customerDetail(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	id, err := opts.Require("customer-id")
	if err != nil {
		return nil, err
	}
	return get(ctx, c, customerPath(id), nil)
}

func customerBusinessRecords(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	id, err := opts.Require("customer-id")
	if err != nil {
		return nil, err
	}
	extra, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	q := lcrm.Query{{Key: "customerId", Value: id}}
	return get(ctx, c, pathBusinessRecords, append(q, extra...))
}

func businessRecords(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	extra, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	var q lcrm.Query
	addOptions(&q, opts,
		[2]string{"customer-id", "customerId"},
		[2]string{"lead-id", "leadId"},
		[2]string{"opportunity-id", "opportunityId"},
		[2]string{"recorder-id", "recorderId"},
		[2]string{"start-date", "startDate"},
		[2]string{"end-date", "endDate"},
	)
	return get(ctx, c, pathBusinessRecords, append(q, extra...))
}

// customerOpportunities reads the customer record when the id is known and
// otherwise searches opportunities by customer name.
func customerOpportunities(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	if id := opts.Get("customer-id"); id != "" {
		return get(ctx, c, customerPath(id), nil)
	}
	name := opts.Get("customer-name")
	if name == "" {
		return nil, fmt.Errorf("%w: --customer-id or --customer-name is required", apperror.ErrValidation)
	}
	extra, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	q := lcrm.Query{{Key: "customerName", Value: name}}
	return get(ctx, c, pathOpportunities, append(q, extra...))
}

// listWithQuery returns a handler that passes only the --query pairs.
func listWithQuery(path string) cli.HandlerFunc {
	return func(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
		q, err := baseQuery(opts)
		if err != nil {
			return nil, err
		}
		return get(ctx, c, path, q)
	}
}

func tags(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	q, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	q.AddIf("category", opts.Get("category"))

	res, err := get(ctx, c, pathTags, q)
	if err != nil {
		return nil, err
	}
	return filter.Tags(ctx, res, opts.Get("search")), nil
}

// users lists users through the admin endpoint. Callers without access to it
// (401/403) get the sales and presales directory instead, filtered locally.
func users(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	q, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	addOptions(&q, opts,
		[2]string{"search", "search"},
		[2]string{"page", "page"},
		[2]string{"limit", "limit"},
	)

	res, err := get(ctx, c, pathUsers, q)
	if err != nil {
		return nil, err
	}
	if res.OK || (res.Status != http.StatusUnauthorized && res.Status != http.StatusForbidden) {
		return res, nil
	}

	ctxlog.FromContext(ctx).Info("user list not permitted, using sales-presales directory", "status", res.Status)
	return salesPresalesUsers(ctx, c, opts)
}

func salesPresalesUsers(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	res, err := get(ctx, c, pathSalesPresalesUsers, nil)
	if err != nil {
		return nil, err
	}
	return filter.Users(ctx, res, opts.Get("search")), nil
}

func notifications(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	q, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	addOptions(&q, opts,
		[2]string{"status", "status"},
		[2]string{"category", "category"},
		[2]string{"page", "page"},
		[2]string{"limit", "limit"},
	)
	return get(ctx, c, pathNotifications, q)
}

func presalesItineraries(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	q, err := baseQuery(opts)
	if err != nil {
		return nil, err
	}
	addOptions(&q, opts,
		[2]string{"start-date", "startDate"},
		[2]string{"end-date", "endDate"},
		[2]string{"user-id", "userId"},
		[2]string{"opportunity-id", "opportunityId"},
	)
	return get(ctx, c, pathWeekItineraries, q)
}
