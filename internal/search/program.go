package search

import "github.com/ai8future/lcrm/internal/cli"

var usage = map[Action][2]string{
	ActionMe:                      {"current user profile", ""},
	ActionCustomers:               {"search customers", "[--company-name <name>] [--page <n>] [--limit <n>]"},
	ActionCustomerDetail:          {"customer record", "--customer-id <id>"},
	ActionCustomerBusinessRecords: {"business records of one customer", "--customer-id <id>"},
	ActionBusinessRecords:         {"search business records", "[--customer-id <id>] [--lead-id <id>] [--opportunity-id <id>] [--recorder-id <userId>] [--start-date <date>] [--end-date <date>]"},
	ActionCustomerOpportunities:   {"opportunities of one customer", "--customer-id <id> | --customer-name <name>"},
	ActionCustomerContacts:        {"contacts of one customer", "--customer-id <id>"},
	ActionLeads:                   {"search leads", ""},
	ActionTags:                    {"list tags", "[--category <category>] [--search <keyword>]"},
	ActionUsers:                   {"list users", "[--search <keyword>] [--page <n>] [--limit <n>]"},
	ActionSalesPresalesUsers:      {"list sales and presales users", "[--search <keyword>]"},
	ActionOpportunities:           {"search opportunities", ""},
	ActionNotifications:           {"list notifications", "[--status <status>] [--category <category>] [--page <n>] [--limit <n>]"},
	ActionPresalesItineraries:     {"presales itineraries of a week", "[--start-date <date>] [--end-date <date>] [--user-id <id>] [--opportunity-id <id>]"},
}

const examples = `  lcrm-search me
  lcrm-search customers --company-name 朗致集团 --limit 5
  lcrm-search tags --category LEAD --search 活动
  lcrm-search users --search 张三 --limit 20
  lcrm-search business-records --recorder-id <userId> --start-date 2026-02-12 --end-date 2026-02-12
  lcrm-search business-records --customer-id <id> --query limit=10
  lcrm-search customer-opportunities --customer-name 朗致集团
  lcrm-search leads --query keyword=AI --query limit=20
  lcrm-search opportunities --query customerName=朗致集团 --query status=需求引导,客户立项
  lcrm-search notifications --status active --category LEAD_TIMEOUT
  lcrm-search presales-itineraries --start-date 2026-02-10 --end-date 2026-02-16

  Every action accepts --query key=value (repeatable) for extra query parameters.`

// Program describes the lcrm-search binary.
func Program(version string) cli.Program {
	p := cli.Program{
		Name:    "lcrm-search",
		Short:   "Look up LCRM customers, records, opportunities, users and itineraries",
		Version: version,
		Example: examples,
	}
	for _, a := range Actions {
		run, _ := Handler(a)
		info := usage[a]
		options := info[1]
		if options == "" {
			options = "[--query key=value]..."
		} else {
			options += " [--query key=value]..."
		}
		p.Actions = append(p.Actions, cli.Action{
			Name:    string(a),
			Short:   info[0],
			Options: options,
			Run:     run,
		})
	}
	return p
}
