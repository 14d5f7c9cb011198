// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/MLStudio/pkg/analysis"
	"github.com/AleutianAI/MLStudio/pkg/api"
	"github.com/AleutianAI/MLStudio/pkg/ux"
)

// maxColumnTags caps how many column names the dataset card shows inline.
const maxColumnTags = 8

// renderDatasetCard projects a dataset reference and its metadata.
func renderDatasetCard(dataset string, info *api.DatasetInfo) {
	if info == nil {
		ux.Info(fmt.Sprintf("Active dataset: %s", dataset))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rows: %d\n", info.Rows)
	fmt.Fprintf(&b, "Columns: %d\n", info.Columns)
	if info.MemoryUsage != "" {
		fmt.Fprintf(&b, "Memory: %s\n", info.MemoryUsage)
	}
	if info.DuplicatesRemoved > 0 {
		fmt.Fprintf(&b, "Duplicates removed: %d\n", info.DuplicatesRemoved)
	}
	b.WriteString(columnTags(info.ColumnsList))

	ux.Card(dataset, strings.TrimRight(b.String(), "\n"))
}

// columnTags renders up to maxColumnTags column names, then a count of
// the rest.
func columnTags(columns []string) string {
	if len(columns) == 0 {
		return ""
	}

	shown := columns
	extra := 0
	if len(shown) > maxColumnTags {
		extra = len(shown) - maxColumnTags
		shown = shown[:maxColumnTags]
	}

	parts := make([]string, 0, len(shown)+1)
	for _, column := range shown {
		if ux.Plain() {
			parts = append(parts, column)
		} else {
			parts = append(parts, ux.Styles.Tag.Render(column))
		}
	}
	if extra > 0 {
		more := fmt.Sprintf("+%d more", extra)
		if ux.Plain() {
			parts = append(parts, more)
		} else {
			parts = append(parts, ux.Styles.Muted.Render(more))
		}
	}
	if ux.Plain() {
		return "Columns list: " + strings.Join(parts, ", ")
	}
	return strings.Join(parts, " ")
}

// renderSummary projects a reduced analysis batch: one card per model,
// the winner, and the classification dashboard.
func renderSummary(summary *analysis.Summary) {
	for _, model := range summary.Models {
		renderModel(model)
	}

	if summary.Winner != nil {
		renderWinner(summary.Winner)
	} else {
		ux.Warning("No model produced a usable score")
	}

	if summary.BestClassification != nil {
		renderDashboard(summary.BestClassification)
	}
}

func renderModel(model analysis.ModelView) {
	title := algorithmLabel(model.Algorithm)
	if model.ModelType != "" {
		title = fmt.Sprintf("%s (%s)", title, model.ModelType)
	}

	if model.Err != "" {
		if ux.Plain() {
			fmt.Printf("%s: FAILED: %s\n", title, model.Err)
			return
		}
		content := ux.Styles.Error.Render(model.Err)
		fmt.Println(ux.Styles.ErrorCard.Width(60).Render(
			ux.Styles.Bold.Render(title) + "\n" + content))
		return
	}

	var b strings.Builder
	for _, metric := range model.Metrics {
		fmt.Fprintf(&b, "%s: %s\n", metric.Label, metric.Value)
	}
	ux.Card(title, strings.TrimRight(b.String(), "\n"))
}

func renderWinner(winner *analysis.Winner) {
	line := fmt.Sprintf("Best model: %s with %s",
		algorithmLabel(winner.Algorithm), winner.DisplayScore)
	if ux.Plain() {
		fmt.Printf("WINNER: %s\n", line)
		return
	}
	fmt.Println(ux.Styles.WinnerCard.Width(60).Render(
		string(ux.IconTrophy) + " " + ux.Styles.Highlight.Render(line)))
}

// renderDashboard shows the four headline classification metrics of the
// most accurate classifier in the batch.
func renderDashboard(best *api.AlgorithmResult) {
	ux.Title(fmt.Sprintf("Classification dashboard (%s)", algorithmLabel(best.Algorithm)))
	ux.KeyValue("Accuracy", percent(best.Accuracy))
	ux.KeyValue("F1 score", percent(best.F1Score))
	ux.KeyValue("Precision", percent(best.Precision))
	ux.KeyValue("Recall", percent(best.Recall))
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
