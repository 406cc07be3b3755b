// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tombee/kontent-mcp/pkg/kontent"
)

type variantArgs struct {
	ItemID     string `json:"itemId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the content item"`
	LanguageID string `json:"languageId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the language"`
}

func (a variantArgs) Validate() error {
	if err := requireUUID("itemId", a.ItemID); err != nil {
		return err
	}
	return requireUUID("languageId", a.LanguageID)
}

// actionResult is the generic envelope of a variant action.
type actionResult struct {
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (t *toolset) getVariant(ctx context.Context, args variantArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetVariant(ctx, args.ItemID, args.LanguageID)
}

type upsertVariantArgs struct {
	ItemCodename         string `json:"itemCodename" jsonschema:"minLength=1" jsonschema_description:"Codename of the content item"`
	LanguageCodename     string `json:"languageCodename" jsonschema:"minLength=1" jsonschema_description:"Codename of the language variant (e.g. 'default' or 'en-US')"`
	Elements             string `json:"elements" jsonschema_description:"JSON string with the element values: an array of {element: {codename}, value} objects or an object keyed by element codename"`
	WorkflowStepCodename string `json:"workflow_step_codename,omitempty" jsonschema_description:"Codename of the workflow step to put the variant in"`
}

func (t *toolset) upsertVariant(ctx context.Context, args upsertVariantArgs) (any, error) {
	elements, err := kontent.ParseVariantElements(args.Elements)
	if err != nil {
		var syntax *kontent.ElementsSyntaxError
		if errors.As(err, &syntax) {
			return nil, &messageError{text: "Error: " + syntax.Error(), err: err}
		}
		return nil, err
	}
	if err := requireValue("itemCodename", args.ItemCodename); err != nil {
		return nil, err
	}
	if err := requireValue("languageCodename", args.LanguageCodename); err != nil {
		return nil, err
	}

	body := kontent.VariantUpsert{Elements: elements}
	if args.WorkflowStepCodename != "" {
		step := kontent.ByCodename(args.WorkflowStepCodename)
		body.WorkflowStep = &step
	}

	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.UpsertVariant(ctx, args.ItemCodename, args.LanguageCodename, body)
}

func (t *toolset) createVariantVersion(ctx context.Context, args variantArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.CreateNewVersion(ctx, args.ItemID, args.LanguageID)
	if err != nil {
		return nil, err
	}
	return actionResult{
		Message: fmt.Sprintf("Successfully created new version of language variant '%s' for content item '%s'", args.LanguageID, args.ItemID),
		Result:  raw,
	}, nil
}

type deleteVariantResult struct {
	Message        string          `json:"message"`
	DeletedVariant json.RawMessage `json:"deletedVariant"`
}

func (t *toolset) deleteVariant(ctx context.Context, args variantArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.DeleteVariant(ctx, args.ItemID, args.LanguageID)
	if err != nil {
		return nil, err
	}
	return deleteVariantResult{
		Message:        fmt.Sprintf("Language variant '%s' of content item '%s' deleted successfully", args.LanguageID, args.ItemID),
		DeletedVariant: raw,
	}, nil
}

type changeWorkflowArgs struct {
	ItemID         string `json:"itemId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the content item"`
	LanguageID     string `json:"languageId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the language"`
	WorkflowID     string `json:"workflowId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the workflow"`
	WorkflowStepID string `json:"workflowStepId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the target workflow step"`
}

func (a changeWorkflowArgs) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"itemId", a.ItemID},
		{"languageId", a.LanguageID},
		{"workflowId", a.WorkflowID},
		{"workflowStepId", a.WorkflowStepID},
	} {
		if err := requireUUID(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (t *toolset) changeWorkflowStep(ctx context.Context, args changeWorkflowArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.ChangeWorkflowStep(ctx, args.ItemID, args.LanguageID, args.WorkflowID, args.WorkflowStepID)
	if err != nil {
		return nil, err
	}
	return actionResult{
		Message: fmt.Sprintf("Successfully changed workflow step of language variant '%s' for content item '%s' to workflow step '%s'",
			args.LanguageID, args.ItemID, args.WorkflowStepID),
		Result: raw,
	}, nil
}

type filterVariantsArgs struct {
	kontent.FilterFacets

	OrderBy           kontent.OrderBy        `json:"order_by,omitempty" jsonschema:"enum=name,enum=due,enum=last_modified"`
	OrderDirection    kontent.OrderDirection `json:"order_direction,omitempty" jsonschema:"enum=asc,enum=desc"`
	ContinuationToken string                 `json:"continuation_token,omitempty" jsonschema_description:"Token from a previous response to fetch the next page"`
}

func (t *toolset) filterVariants(ctx context.Context, args filterVariantsArgs) (any, error) {
	req, err := kontent.NewFilterRequest(args.FilterFacets, args.OrderBy, args.OrderDirection)
	if err != nil {
		return nil, err
	}
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.FilterVariants(ctx, req, args.ContinuationToken)
}

const (
	publishDescription = "Publish or schedule a language variant of a content item in Kontent.ai. " +
		"Without scheduledTo the variant is published immediately and becomes available through the Delivery API. " +
		"With scheduledTo (ISO-8601 with offset) publishing is scheduled; displayTimezone only changes how the time is shown in the UI. " +
		"The variant must be in a workflow step that allows publishing."
	unpublishDescription = "Unpublish or schedule unpublishing of a language variant of a content item in Kontent.ai. " +
		"Without scheduledTo the variant is unpublished immediately, moved to Archived and removed from the Delivery API. " +
		"With scheduledTo (ISO-8601 with offset) unpublishing is scheduled; displayTimezone only changes how the time is shown in the UI. " +
		"The variant must be published."
)

type scheduleArgs struct {
	ItemID          string `json:"itemId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the content item"`
	LanguageID      string `json:"languageId" jsonschema:"format=uuid" jsonschema_description:"Internal ID of the language"`
	ScheduledTo     string `json:"scheduledTo,omitempty" jsonschema:"format=date-time" jsonschema_description:"ISO-8601 date and time with offset; omit to act immediately"`
	DisplayTimezone string `json:"displayTimezone,omitempty" jsonschema_description:"IANA timezone used to display the schedule in the UI (e.g. 'Europe/London')"`
}

func (a scheduleArgs) variant() variantArgs {
	return variantArgs{ItemID: a.ItemID, LanguageID: a.LanguageID}
}

func (a scheduleArgs) schedule() kontent.Schedule {
	return kontent.Schedule{ScheduledTo: a.ScheduledTo, DisplayTimezone: a.DisplayTimezone}
}

// scheduleOutcome is the result member of a publish or unpublish call.
type scheduleOutcome struct {
	ItemID          string  `json:"itemId"`
	LanguageID      string  `json:"languageId"`
	ScheduledTo     *string `json:"scheduledTo"`
	DisplayTimezone *string `json:"displayTimezone"`
	Action          string  `json:"action"`
	Timestamp       string  `json:"timestamp"`
}

type scheduleResult struct {
	Message string          `json:"message"`
	Result  scheduleOutcome `json:"result"`
}

func (t *toolset) outcome(args scheduleArgs, immediate string) scheduleOutcome {
	o := scheduleOutcome{
		ItemID:     args.ItemID,
		LanguageID: args.LanguageID,
		Action:     immediate,
		Timestamp:  t.now().UTC().Format(isoMillis),
	}
	if args.ScheduledTo != "" {
		o.Action = "scheduled"
		o.ScheduledTo = &args.ScheduledTo
		if args.DisplayTimezone != "" {
			o.DisplayTimezone = &args.DisplayTimezone
		}
	}
	return o
}

func timezoneSuffix(tz string) string {
	if tz == "" {
		return ""
	}
	return fmt.Sprintf(" (timezone: %s)", tz)
}

func (t *toolset) publishVariant(ctx context.Context, args scheduleArgs) (any, error) {
	if err := args.variant().Validate(); err != nil {
		return nil, err
	}
	s := args.schedule()
	if err := s.Validate("publishing"); err != nil {
		return nil, err
	}
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := c.Publish(ctx, args.ItemID, args.LanguageID, s); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Successfully published language variant '%s' for content item '%s'. The content is now live and available through Delivery API.",
		args.LanguageID, args.ItemID)
	if s.IsScheduled() {
		msg = fmt.Sprintf("Successfully scheduled language variant '%s' for content item '%s' to be published at '%s'%s.",
			args.LanguageID, args.ItemID, s.ScheduledTo, timezoneSuffix(s.DisplayTimezone))
	}
	return scheduleResult{Message: msg, Result: t.outcome(args, "published")}, nil
}

func (t *toolset) unpublishVariant(ctx context.Context, args scheduleArgs) (any, error) {
	if err := args.variant().Validate(); err != nil {
		return nil, err
	}
	s := args.schedule()
	if err := s.Validate("unpublishing"); err != nil {
		return nil, err
	}
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := c.Unpublish(ctx, args.ItemID, args.LanguageID, s); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Successfully unpublished language variant '%s' for content item '%s'. The content has been moved to Archived and is no longer available through Delivery API.",
		args.LanguageID, args.ItemID)
	if s.IsScheduled() {
		msg = fmt.Sprintf("Successfully scheduled language variant '%s' for content item '%s' to be unpublished at '%s'%s. The content will be removed from Delivery API at the scheduled time.",
			args.LanguageID, args.ItemID, s.ScheduledTo, timezoneSuffix(s.DisplayTimezone))
	}
	return scheduleResult{Message: msg, Result: t.outcome(args, "unpublished")}, nil
}
