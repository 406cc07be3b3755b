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


package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteToolNames(t *testing.T) {
	completions, directive := CompleteToolNames(nil, nil, "get-")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
	}
	if len(completions) == 0 {
		t.Fatal("expected completions for prefix get-")
	}
	var found bool
	for _, c := range completions {
		name, _, _ := strings.Cut(c, "\t")
		if !strings.HasPrefix(name, "get-") {
			t.Errorf("completion %q does not match prefix", name)
		}
		if name == "get-variant-mapi" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected get-variant-mapi in %v", completions)
	}
}

func TestCompleteToolNames_SecondArgument(t *testing.T) {
	completions, _ := CompleteToolNames(nil, []string{"get-item-mapi"}, "")
	if len(completions) != 0 {
		t.Errorf("expected no completions after the first argument, got %v", completions)
	}
}

func TestCompleteTransports(t *testing.T) {
	completions, _ := CompleteTransports(nil, nil, "")
	if len(completions) != 3 {
		t.Fatalf("expected 3 transports, got %v", completions)
	}
}

func TestSafeCompletionWrapper_RecoversPanic(t *testing.T) {
	results, directive := SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		panic("boom")
	})
	if len(results) != 0 || directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("got %v, %v", results, directive)
	}
}

func TestCompletionCommand_Bash(t *testing.T) {
	root := &cobra.Command{Use: "kontent-mcp"}
	root.AddCommand(NewCommand())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if !strings.Contains(buf.String(), "kontent-mcp") {
		t.Error("expected the bash script to reference the command name")
	}
}
