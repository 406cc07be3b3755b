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

package kontent

// WorkflowStep is a custom step between draft and published.
type WorkflowStep struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Codename      string   `json:"codename"`
	TransitionsTo []string `json:"transitions_to,omitempty"`
	RoleIDs       []string `json:"role_ids,omitempty"`
}

type PublishedStep struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	Codename                string   `json:"codename"`
	UnpublishRoleIDs        []string `json:"unpublish_role_ids,omitempty"`
	CreateNewVersionRoleIDs []string `json:"create_new_version_role_ids,omitempty"`
}

type ScheduledStep struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Codename string `json:"codename"`
}

type ArchivedStep struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Codename string   `json:"codename"`
	RoleIDs  []string `json:"role_ids,omitempty"`
}

type WorkflowScope struct {
	ContentTypes []struct {
		ID string `json:"id"`
	} `json:"content_types"`
}

// Workflow is a workflow as returned by the Management API.
type Workflow struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Codename      string          `json:"codename"`
	Scopes        []WorkflowScope `json:"scopes"`
	Steps         []WorkflowStep  `json:"steps"`
	PublishedStep PublishedStep   `json:"published_step"`
	ScheduledStep ScheduledStep   `json:"scheduled_step"`
	ArchivedStep  ArchivedStep    `json:"archived_step"`
}

// Validate checks that every identifier is a UUID.
func (w Workflow) Validate(field string) error {
	if err := checkUUID(joinPath(field, "id"), w.ID); err != nil {
		return err
	}
	for i, scope := range w.Scopes {
		for j, ct := range scope.ContentTypes {
			if err := checkUUID(joinPath(indexPath(joinPath(indexPath(joinPath(field, "scopes"), i), "content_types"), j), "id"), ct.ID); err != nil {
				return err
			}
		}
	}
	for i, s := range w.Steps {
		path := indexPath(joinPath(field, "steps"), i)
		if err := checkUUID(joinPath(path, "id"), s.ID); err != nil {
			return err
		}
		if err := checkUUIDs(joinPath(path, "transitions_to"), s.TransitionsTo); err != nil {
			return err
		}
		if err := checkUUIDs(joinPath(path, "role_ids"), s.RoleIDs); err != nil {
			return err
		}
	}
	for _, err := range []error{
		checkUUID(joinPath(field, "published_step.id"), w.PublishedStep.ID),
		checkUUIDs(joinPath(field, "published_step.unpublish_role_ids"), w.PublishedStep.UnpublishRoleIDs),
		checkUUIDs(joinPath(field, "published_step.create_new_version_role_ids"), w.PublishedStep.CreateNewVersionRoleIDs),
		checkUUID(joinPath(field, "scheduled_step.id"), w.ScheduledStep.ID),
		checkUUID(joinPath(field, "archived_step.id"), w.ArchivedStep.ID),
		checkUUIDs(joinPath(field, "archived_step.role_ids"), w.ArchivedStep.RoleIDs),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

func checkUUIDs(field string, ids []string) error {
	for i, id := range ids {
		if err := checkUUID(indexPath(field, i), id); err != nil {
			return err
		}
	}
	return nil
}

// ParseWorkflows decodes and validates a workflow list.
func ParseWorkflows(data []byte) ([]Workflow, error) {
	var workflows []Workflow
	if err := decodeInto(data, &workflows, "workflows"); err != nil {
		return nil, err
	}
	for i, w := range workflows {
		if err := w.Validate(indexPath("workflows", i)); err != nil {
			return nil, err
		}
	}
	return workflows, nil
}
