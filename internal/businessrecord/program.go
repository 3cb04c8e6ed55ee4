package businessrecord

import "github.com/ai8future/lcrm/internal/cli"

const examples = `  lcrm-business-record find-customer --company-name 朗致集团 --limit 5
  lcrm-business-record customer-detail --customer-id <id>
  lcrm-business-record create --customer-id <id> --follow-up-type 电话 --contacted-person 张三 --description "已沟通预算与排期..."
  lcrm-business-record create --payload-file /tmp/business-record.json

  Use lcrm-search to query existing business records.`

// Program describes the lcrm-business-record binary.
func Program(version string) cli.Program {
	run := func(a Action) cli.HandlerFunc {
		h, _ := Handler(a)
		return h
	}
	return cli.Program{
		Name:    "lcrm-business-record",
		Short:   "Find customers and file business records",
		Version: version,
		Example: examples,
		Actions: []cli.Action{
			{
				Name:    string(ActionFindCustomer),
				Short:   "find customers by company name",
				Options: "--company-name <name> [--limit <n>] [--query key=value]...",
				Run:     run(ActionFindCustomer),
			},
			{
				Name:    string(ActionCustomerDetail),
				Short:   "customer with contacts, opportunities and records",
				Options: "--customer-id <id>",
				Run:     run(ActionCustomerDetail),
			},
			{
				Name:  string(ActionCreate),
				Short: "create a business record",
				Options: "(--customer-id <id> | --lead-id <id>) --follow-up-type <type> --contacted-person <name> --description <text> " +
					"[--record-time <time>] [--opportunity-id <id>] [--opportunity-status <status>] " +
					"[--estimated-close-date <date>] [--actual-close-date <date>] | --payload <json> | --payload-file <path>",
				Run: run(ActionCreate),
			},
		},
	}
}
