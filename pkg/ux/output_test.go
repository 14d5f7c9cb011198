// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	w.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()
	w.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func withPlain(t *testing.T, plain bool) {
	t.Helper()
	was := Plain()
	SetPlain(plain)
	t.Cleanup(func() { SetPlain(was) })
}

func TestSuccess_PlainMode(t *testing.T) {
	withPlain(t, true)

	out := captureStdout(t, func() { Success("uploaded") })
	if out != "OK: uploaded\n" {
		t.Errorf("got %q, want OK-prefixed line", out)
	}
}

func TestError_PlainModeGoesToStderr(t *testing.T) {
	withPlain(t, true)

	out := captureStderr(t, func() { Error("backend unreachable") })
	if out != "ERROR: backend unreachable\n" {
		t.Errorf("got %q", out)
	}
}

func TestWarning_PlainModeGoesToStderr(t *testing.T) {
	withPlain(t, true)

	out := captureStderr(t, func() { Warning("dataset is stale") })
	if out != "WARN: dataset is stale\n" {
		t.Errorf("got %q", out)
	}
}

func TestMuted_SuppressedInPlainMode(t *testing.T) {
	withPlain(t, true)

	out := captureStdout(t, func() { Muted("hint text") })
	if out != "" {
		t.Errorf("muted text should be dropped in plain mode, got %q", out)
	}
}

func TestKeyValue_PlainMode(t *testing.T) {
	withPlain(t, true)

	out := captureStdout(t, func() { KeyValue("Rows", "150") })
	if out != "Rows: 150\n" {
		t.Errorf("got %q", out)
	}
}

func TestCard_PlainMode(t *testing.T) {
	withPlain(t, true)

	out := captureStdout(t, func() { Card("Dataset", "150 rows") })
	if out != "Dataset: 150 rows\n" {
		t.Errorf("got %q", out)
	}
}

func TestCard_StyledModeCarriesContent(t *testing.T) {
	withPlain(t, false)

	out := captureStdout(t, func() { Card("Dataset", "150 rows") })
	if !strings.Contains(out, "Dataset") || !strings.Contains(out, "150 rows") {
		t.Errorf("card should carry title and content, got %q", out)
	}
}

func TestIcon_RenderPlain(t *testing.T) {
	withPlain(t, true)

	if got := IconSuccess.Render(); got != "✓" {
		t.Errorf("plain icon = %q, want bare glyph", got)
	}
}

func TestSetPlain_Overrides(t *testing.T) {
	withPlain(t, false)
	if Plain() {
		t.Fatal("SetPlain(false) should report styled")
	}
	SetPlain(true)
	if !Plain() {
		t.Fatal("SetPlain(true) should report plain")
	}
}
