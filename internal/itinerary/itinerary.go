// Package itinerary implements lcrm-presales-itinerary: planning presales trips
// against opportunities and recording how they went.
package itinerary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/cli"
	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/lcrm"
)

// Action names one lcrm-presales-itinerary subcommand.
type Action string

const (
	ActionAIParse             Action = "ai-parse"
	ActionSearchOpportunities Action = "search-opportunities"
	ActionCreate              Action = "create"
	ActionUpdate              Action = "update"
	ActionDelete              Action = "delete"
	ActionComplete            Action = "complete"
)

// Actions lists every action in usage order.
var Actions = []Action{
	ActionAIParse,
	ActionSearchOpportunities,
	ActionCreate,
	ActionUpdate,
	ActionDelete,
	ActionComplete,
}

// Handler returns the handler for a.
func Handler(a Action) (cli.HandlerFunc, bool) {
	switch a {
	case ActionAIParse:
		return aiParse, true
	case ActionSearchOpportunities:
		return searchOpportunities, true
	case ActionCreate:
		return create, true
	case ActionUpdate:
		return update, true
	case ActionDelete:
		return remove, true
	case ActionComplete:
		return complete, true
	}
	return nil, false
}

const (
	basePath = "/api/presales-itineraries"

	// DefaultOpportunityLimit caps search-opportunities unless --limit is given.
	DefaultOpportunityLimit = "20"
)

func itineraryPath(id string) string {
	return basePath + "/" + url.PathEscape(id)
}

// aiParse asks the server to turn free text into a draft itinerary.
func aiParse(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	text, err := opts.Require("text")
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, lcrm.Request{
		Method: http.MethodPost,
		Path:   basePath + "/ai-parse",
		Body:   map[string]any{"text": text},
	})
}

func searchOpportunities(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	q := lcrm.Query{{Key: "limit", Value: opts.GetOr("limit", DefaultOpportunityLimit)}}
	q.AddIf("keyword", opts.Get("keyword"))
	return c.Do(ctx, lcrm.Request{
		Method: http.MethodGet,
		Path:   basePath + "/opportunities",
		Query:  q,
	})
}

func create(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	body, err := buildBody(opts)
	if err != nil {
		return nil, err
	}
	if err := Validate(body); err != nil {
		return nil, err
	}
	return c.Do(ctx, lcrm.Request{Method: http.MethodPost, Path: basePath, Body: body})
}

func update(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	id, err := opts.Require("id")
	if err != nil {
		return nil, err
	}
	body, err := buildBody(opts)
	if err != nil {
		return nil, err
	}
	if err := Validate(body); err != nil {
		return nil, err
	}
	return c.Do(ctx, lcrm.Request{Method: http.MethodPut, Path: itineraryPath(id), Body: body})
}

func remove(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	id, err := opts.Require("id")
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, lcrm.Request{Method: http.MethodDelete, Path: itineraryPath(id)})
}

// complete closes an itinerary with the hours actually spent.
func complete(ctx context.Context, c *lcrm.Client, opts commands.Options) (*lcrm.Result, error) {
	id, err := opts.Require("id")
	if err != nil {
		return nil, err
	}
	rawHours, err := opts.Require("actual-hours")
	if err != nil {
		return nil, err
	}
	note, err := opts.Require("completion-note")
	if err != nil {
		return nil, err
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(rawHours), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: --actual-hours must be a number, got %q", apperror.ErrFormat, rawHours)
	}

	return c.Do(ctx, lcrm.Request{
		Method: http.MethodPost,
		Path:   itineraryPath(id) + "/complete",
		Body: map[string]any{
			"actualHours":    hours,
			"completionNote": note,
		},
	})
}
