package itinerary

import "github.com/ai8future/lcrm/internal/cli"

const bodyOptions = "--title <title> --start-time <time> --end-time <time> --opportunity-id <id> " +
	"--trip-type <type> --delivery-mode <现场|远程> | --payload <json> | --payload-file <path>"

const examples = `  lcrm-presales-itinerary ai-parse --text "明天下午给XX客户做产品演示..."
  lcrm-presales-itinerary search-opportunities --keyword 朗致 --limit 20
  lcrm-presales-itinerary create --title "朗致产品演示" --start-time 2026-02-12T14:00:00 --end-time 2026-02-12T16:00:00 --opportunity-id <id> --trip-type 产品演示 --delivery-mode 现场
  lcrm-presales-itinerary create --payload-file /tmp/itinerary.json
  lcrm-presales-itinerary update --id <id> --title "更新后的标题" --start-time 2026-02-12T14:00:00 --end-time 2026-02-12T16:00:00 --opportunity-id <id> --trip-type 产品演示 --delivery-mode 现场
  lcrm-presales-itinerary delete --id <id>
  lcrm-presales-itinerary complete --id <id> --actual-hours 2.5 --completion-note "完成情况说明"

  Start and end times must fall on the hour or half hour.`

var usage = map[Action][2]string{
	ActionAIParse:             {"draft an itinerary from free text", "--text <text>"},
	ActionSearchOpportunities: {"opportunities an itinerary can attach to", "[--keyword <keyword>] [--limit <n>]"},
	ActionCreate:              {"create an itinerary", bodyOptions},
	ActionUpdate:              {"replace an itinerary", "--id <id> " + bodyOptions},
	ActionDelete:              {"delete an itinerary", "--id <id>"},
	ActionComplete:            {"mark an itinerary done", "--id <id> --actual-hours <hours> --completion-note <note>"},
}

// Program describes the lcrm-presales-itinerary binary.
func Program(version string) cli.Program {
	p := cli.Program{
		Name:    "lcrm-presales-itinerary",
		Short:   "Plan, update and complete presales itineraries",
		Version: version,
		Example: examples,
	}
	for _, a := range Actions {
		run, _ := Handler(a)
		p.Actions = append(p.Actions, cli.Action{
			Name:    string(a),
			Short:   usage[a][0],
			Options: usage[a][1],
			Run:     run,
		})
	}
	return p
}
