// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package analysis reduces a batch of per-algorithm results into a display
summary: a normalized per-model metric view plus a single "best model"
selection.

# Winner Selection

One running maximum, seeded at zero, is shared across all three model
families. Each non-error result contributes its family's headline metric
(accuracy, R², silhouette) as a raw magnitude; strictly greater wins, so
ties keep the earliest result in batch order, and a batch whose scores are
all zero or negative produces no winner.

Comparing accuracy, R² and silhouette on one shared scale is intentional
product behavior, carried over unchanged from the ML Studio web UI. An
unbounded R² is not commensurate with an accuracy in [0,1]; see DESIGN.md
before changing this.
*/
package analysis

import (
	"fmt"
	"strconv"

	"github.com/AleutianAI/MLStudio/pkg/api"
)

// -----------------------------------------------------------------------------
// Summary Types
// -----------------------------------------------------------------------------

// Metric is one labeled, display-ready metric value.
type Metric struct {
	Label string
	Value string
}

// ModelView is the normalized per-result projection: either a metric grid
// or an error message, never both.
type ModelView struct {
	// Algorithm is the identifier the model ran as.
	Algorithm string

	// ModelType is the family tag; empty for error entries.
	ModelType string

	// Err is the failure message for algorithms that did not run.
	Err string

	// Metrics holds the family's metric grid in display order.
	Metrics []Metric
}

// Winner identifies the best-scoring model of a batch.
type Winner struct {
	// Algorithm is the winning model's identifier.
	Algorithm string

	// ModelType determines how Score is displayed.
	ModelType string

	// Score is the raw headline metric that won.
	Score float64

	// DisplayScore is the formatted score, e.g. "92.00% accuracy".
	DisplayScore string
}

// Summary is the reduced view of one analysis batch.
type Summary struct {
	// Models holds one view per batch entry, in batch order.
	Models []ModelView

	// Winner is nil when no result scored above zero.
	Winner *Winner

	// BestClassification is the highest-accuracy classification result,
	// if any; it feeds the accuracy/F1/precision/recall dashboard.
	BestClassification *api.AlgorithmResult
}

// -----------------------------------------------------------------------------
// Reduction
// -----------------------------------------------------------------------------

// Reduce maps an ordered result batch to its display summary. It is pure:
// no I/O, no shared state, same input always yields the same output.
func Reduce(batch []api.AlgorithmResult) *Summary {
	summary := &Summary{
		Models: make([]ModelView, 0, len(batch)),
	}

	bestScore := 0.0
	var bestClass *api.AlgorithmResult

	for i := range batch {
		result := batch[i]
		summary.Models = append(summary.Models, viewOf(result))

		score, ok := result.PrimaryScore()
		if !ok {
			continue
		}

		if score > bestScore {
			bestScore = score
			summary.Winner = &Winner{
				Algorithm:    result.Algorithm,
				ModelType:    result.ModelType,
				Score:        score,
				DisplayScore: displayScore(result.ModelType, score),
			}
		}

		if result.ModelType == api.ModelTypeClassification {
			if bestClass == nil || result.Accuracy > bestClass.Accuracy {
				bestClass = &batch[i]
			}
		}
	}

	summary.BestClassification = bestClass
	return summary
}

// viewOf builds the normalized metric grid for one result.
func viewOf(r api.AlgorithmResult) ModelView {
	view := ModelView{
		Algorithm: r.Algorithm,
		ModelType: r.ModelType,
	}

	if r.IsError() {
		view.Err = r.Error
		return view
	}

	switch r.ModelType {
	case api.ModelTypeClassification:
		view.Metrics = []Metric{
			{Label: "Accuracy", Value: percent(r.Accuracy)},
			{Label: "F1 Score", Value: number(r.F1Score)},
			{Label: "Precision", Value: number(r.Precision)},
			{Label: "Recall", Value: number(r.Recall)},
		}
	case api.ModelTypeRegression:
		rmse := "N/A"
		if r.RMSE != nil {
			rmse = number(*r.RMSE)
		}
		view.Metrics = []Metric{
			{Label: "R² Score", Value: number(r.R2Score)},
			{Label: "RMSE", Value: rmse},
			{Label: "MAE", Value: number(r.MAE)},
			{Label: "MSE", Value: number(r.MSE)},
		}
	case api.ModelTypeClustering:
		view.Metrics = []Metric{
			{Label: "Silhouette Score", Value: number(r.SilhouetteScore)},
			{Label: "Clusters", Value: strconv.Itoa(r.ClustersCreated)},
		}
	}

	return view
}

// displayScore formats the winning score per model family.
func displayScore(modelType string, score float64) string {
	switch modelType {
	case api.ModelTypeClassification:
		return fmt.Sprintf("%.2f%% accuracy", score*100)
	case api.ModelTypeRegression:
		return fmt.Sprintf("R² score: %.4f", score)
	case api.ModelTypeClustering:
		return fmt.Sprintf("Silhouette: %.4f", score)
	default:
		return number(score)
	}
}

// percent renders a [0,1] ratio as a percentage.
func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// number renders a metric the shortest way that round-trips, matching how
// the web UI printed raw metric values.
func number(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
