package businessrecord

import (
	"fmt"
	"strings"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/validation"
)

// FollowUpTypes are the accepted values of followUpType.
var FollowUpTypes = []string{"微信", "电话", "线上会议", "邮件", "现场拜访", "商务活动", "其他"}

func init() {
	validation.RegisterEnum("follow_up_type", FollowUpTypes...)
}

// MinDescriptionLength is counted in characters after HTML tags are removed.
const MinDescriptionLength = 10

// createRule holds the normalized values a new record is checked against.
type createRule struct {
	CustomerID      string `json:"customerId" validate:"required_without=LeadID"`
	LeadID          string `json:"leadId"`
	FollowUpType    string `json:"followUpType" validate:"notblank,follow_up_type"`
	ContactedPerson string `json:"contactedPerson" validate:"notblank"`
	Description     string `json:"description" validate:"min=10"`
}

// ValidateCreate checks a business record body before it is sent. Fields that
// are not strings count as empty.
func ValidateCreate(body any) error {
	m, ok := body.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: payload must be a JSON object", apperror.ErrFormat)
	}

	rule := createRule{
		CustomerID:      strings.TrimSpace(validation.StringField(m, "customerId")),
		LeadID:          strings.TrimSpace(validation.StringField(m, "leadId")),
		FollowUpType:    strings.TrimSpace(validation.StringField(m, "followUpType")),
		ContactedPerson: strings.TrimSpace(validation.StringField(m, "contactedPerson")),
		Description:     validation.StripHTML(validation.StringField(m, "description")),
	}
	return validation.Struct(rule)
}

// createFields maps record fields to the options that set them.
var createFields = []struct{ key, option string }{
	{"customerId", "customer-id"},
	{"leadId", "lead-id"},
	{"followUpType", "follow-up-type"},
	{"contactedPerson", "contacted-person"},
	{"description", "description"},
	{"recordTime", "record-time"},
	{"opportunityId", "opportunity-id"},
	{"opportunityStatus", "opportunity-status"},
	{"estimatedCloseDate", "estimated-close-date"},
	{"actualCloseDate", "actual-close-date"},
}

// buildCreateBody returns --payload/--payload-file when given and otherwise a
// body assembled from the field options, leaving out empty ones.
func buildCreateBody(opts commands.Options) (any, error) {
	payload, err := commands.ReadJSONOption(opts, "payload")
	if err != nil {
		return nil, err
	}
	if payload != nil {
		return payload, nil
	}

	body := make(map[string]any)
	for _, f := range createFields {
		if v := opts.Get(f.option); v != "" {
			body[f.key] = v
		}
	}
	return body, nil
}
