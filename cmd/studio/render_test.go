// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/AleutianAI/MLStudio/pkg/ux"
)

func plainOutputMode(t *testing.T) {
	t.Helper()
	was := ux.Plain()
	ux.SetPlain(true)
	t.Cleanup(func() { ux.SetPlain(was) })
}

func TestColumnTags_ShowsAll(t *testing.T) {
	plainOutputMode(t)

	got := columnTags([]string{"age", "income", "label"})
	want := "Columns list: age, income, label"
	if got != want {
		t.Errorf("columnTags = %q, want %q", got, want)
	}
}

func TestColumnTags_CapsAtEight(t *testing.T) {
	plainOutputMode(t)

	columns := make([]string, 12)
	for i := range columns {
		columns[i] = fmt.Sprintf("col%d", i)
	}
	got := columnTags(columns)

	if !strings.Contains(got, "+4 more") {
		t.Errorf("columnTags = %q, want a +4 more marker", got)
	}
	if strings.Contains(got, "col8") {
		t.Errorf("columnTags = %q, should stop after eight names", got)
	}
	if !strings.Contains(got, "col7") {
		t.Errorf("columnTags = %q, should include the eighth name", got)
	}
}

func TestColumnTags_Empty(t *testing.T) {
	if got := columnTags(nil); got != "" {
		t.Errorf("columnTags(nil) = %q, want empty", got)
	}
}

func TestAlgorithmLabel(t *testing.T) {
	if got := algorithmLabel("random_forest"); got != "Random Forest" {
		t.Errorf("algorithmLabel = %q", got)
	}
	// Unknown identifiers pass through untouched.
	if got := algorithmLabel("gradient_boost"); got != "gradient_boost" {
		t.Errorf("algorithmLabel = %q", got)
	}
}

func TestResolveAlgorithms_Defaults(t *testing.T) {
	algorithmFlags = nil
	interactiveSelect = false

	got, err := resolveAlgorithms()
	if err != nil {
		t.Fatalf("resolveAlgorithms: %v", err)
	}
	want := []string{"random_forest", "decision_tree", "linear_regression", "clustering"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("algorithms[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveAlgorithms_ExplicitFlagsWin(t *testing.T) {
	algorithmFlags = []string{"svm"}
	interactiveSelect = true
	t.Cleanup(func() {
		algorithmFlags = nil
		interactiveSelect = false
	})

	got, err := resolveAlgorithms()
	if err != nil {
		t.Fatalf("resolveAlgorithms: %v", err)
	}
	if len(got) != 1 || got[0] != "svm" {
		t.Errorf("got %v, want [svm]", got)
	}
}

func TestPercent(t *testing.T) {
	if got := percent(0.9234); got != "92.34%" {
		t.Errorf("percent = %q", got)
	}
	if got := percent(0); got != "0.00%" {
		t.Errorf("percent = %q", got)
	}
}
