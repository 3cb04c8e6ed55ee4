package itinerary

import (
	"fmt"
	"strings"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/validation"
)

// TripTypes are the accepted values of tripType.
var TripTypes = []string{
	"需求调研", "产品介绍", "技术交流", "方案沟通", "方案撰写",
	"技术预研", "POC测试", "产品演示", "产品部署", "标书撰写",
	"讲标支持", "商务谈判", "内部会议", "案例整理", "培训学习",
}

// DeliveryModes are the accepted values of deliveryMode: on-site and remote.
var DeliveryModes = []string{"现场", "远程"}

func init() {
	validation.RegisterEnum("trip_type", TripTypes...)
	validation.RegisterEnum("delivery_mode", DeliveryModes...)
}

type itineraryRule struct {
	Title         string `json:"title" validate:"notblank"`
	StartTime     string `json:"startTime" validate:"notblank"`
	EndTime       string `json:"endTime" validate:"notblank"`
	OpportunityID string `json:"opportunityId" validate:"notblank"`
	TripType      string `json:"tripType" validate:"notblank,trip_type"`
	DeliveryMode  string `json:"deliveryMode" validate:"notblank,delivery_mode"`
}

// Validate checks an itinerary body for create and update. Missing fields and
// unknown enum values are validation errors; timestamps that do not parse or
// are not on a half hour are format errors.
func Validate(body any) error {
	m, ok := body.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: payload must be a JSON object", apperror.ErrFormat)
	}

	rule := itineraryRule{
		Title:         validation.StringField(m, "title"),
		StartTime:     validation.StringField(m, "startTime"),
		EndTime:       validation.StringField(m, "endTime"),
		OpportunityID: validation.StringField(m, "opportunityId"),
		TripType:      validation.StringField(m, "tripType"),
		DeliveryMode:  validation.StringField(m, "deliveryMode"),
	}
	if err := validation.Struct(rule); err != nil {
		return err
	}

	return validateTimeRange(rule.StartTime, rule.EndTime)
}

func validateTimeRange(startRaw, endRaw string) error {
	start, err := validation.ParseTimestamp(startRaw)
	if err != nil {
		return fmt.Errorf("%w: startTime: %w", apperror.ErrFormat, err)
	}
	end, err := validation.ParseTimestamp(endRaw)
	if err != nil {
		return fmt.Errorf("%w: endTime: %w", apperror.ErrFormat, err)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: endTime must be later than startTime", apperror.ErrValidation)
	}

	var bad []string
	if !validation.OnHalfHour(start) {
		bad = append(bad, "startTime")
	}
	if !validation.OnHalfHour(end) {
		bad = append(bad, "endTime")
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s must be on the hour or half hour (minutes 00 or 30)",
			apperror.ErrFormat, strings.Join(bad, " and "))
	}
	return nil
}

// bodyFields maps itinerary fields to the options that set them.
var bodyFields = []struct{ key, option string }{
	{"title", "title"},
	{"startTime", "start-time"},
	{"endTime", "end-time"},
	{"opportunityId", "opportunity-id"},
	{"tripType", "trip-type"},
	{"deliveryMode", "delivery-mode"},
}

// buildBody returns --payload/--payload-file when given and otherwise the six
// itinerary fields from their options.
func buildBody(opts commands.Options) (any, error) {
	payload, err := commands.ReadJSONOption(opts, "payload")
	if err != nil {
		return nil, err
	}
	if payload != nil {
		return payload, nil
	}

	body := make(map[string]any, len(bodyFields))
	for _, f := range bodyFields {
		body[f.key] = opts.Get(f.option)
	}
	return body, nil
}

