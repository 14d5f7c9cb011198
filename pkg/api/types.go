// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import "fmt"

// -----------------------------------------------------------------------------
// Dataset Types
// -----------------------------------------------------------------------------

// DatasetInfo is the descriptive snapshot the backend produces when it
// ingests a dataset. It is immutable once received; a new upload produces
// a new DatasetInfo, never a mutation of the old one.
type DatasetInfo struct {
	// Rows is the number of data rows after ingestion.
	Rows int `json:"rows"`

	// Columns is the number of columns.
	Columns int `json:"columns"`

	// ColumnsList holds the column names in dataset order.
	// Its length always equals Columns for a well-formed payload.
	ColumnsList []string `json:"columns_list"`

	// MemoryUsage is the backend's human-readable size string (e.g. "2.4 MB").
	MemoryUsage string `json:"memory_usage"`

	// DuplicatesRemoved counts duplicate rows dropped during ingestion.
	DuplicatesRemoved int `json:"duplicates_removed"`
}

// Validate checks the structural invariants of a DatasetInfo payload.
// Counts must be non-negative and the column name list must match the
// declared column count. A violation means the server sent a malformed
// payload and the response is rejected rather than propagated.
func (d *DatasetInfo) Validate() error {
	if d.Rows < 0 {
		return fmt.Errorf("negative row count %d", d.Rows)
	}
	if d.Columns < 0 {
		return fmt.Errorf("negative column count %d", d.Columns)
	}
	if len(d.ColumnsList) != d.Columns {
		return fmt.Errorf("column list has %d names but %d columns declared",
			len(d.ColumnsList), d.Columns)
	}
	if d.DuplicatesRemoved < 0 {
		return fmt.Errorf("negative duplicates_removed %d", d.DuplicatesRemoved)
	}
	return nil
}

// UploadResult is the successful response of an upload: the server-assigned
// dataset reference plus its metadata.
type UploadResult struct {
	// Filename is the opaque server-assigned dataset reference. All later
	// operations (analyze, columns, info, delete) use this name.
	Filename string `json:"filename"`

	// OriginalFilename is the name the file had on the client, as echoed
	// back by the server. Display only.
	OriginalFilename string `json:"original_filename"`

	// Info is the dataset metadata produced during ingestion.
	Info DatasetInfo `json:"info"`
}

// -----------------------------------------------------------------------------
// Algorithm Results
// -----------------------------------------------------------------------------

// Model type tags as sent by the backend.
const (
	ModelTypeClassification = "classification"
	ModelTypeRegression     = "regression"
	ModelTypeClustering     = "clustering"
)

// AlgorithmResult is one model's outcome from a batch analysis. It is a
// tagged union keyed by ModelType; only the metric fields matching the tag
// are meaningful. A non-empty Error marks a failed algorithm that carries
// no metrics at all.
type AlgorithmResult struct {
	// Algorithm is the identifier the analysis was requested with.
	Algorithm string `json:"algorithm"`

	// ModelType tags which metric family applies. Empty on error results.
	ModelType string `json:"model_type,omitempty"`

	// Error is the failure message for algorithms that could not run.
	Error string `json:"error,omitempty"`

	// Classification metrics, all in [0,1].
	Accuracy  float64 `json:"accuracy,omitempty"`
	F1Score   float64 `json:"f1_score,omitempty"`
	Precision float64 `json:"precision,omitempty"`
	Recall    float64 `json:"recall,omitempty"`

	// Regression metrics. RMSE is optional on the wire; nil means the
	// backend did not compute it.
	R2Score float64  `json:"r2_score,omitempty"`
	RMSE    *float64 `json:"rmse,omitempty"`
	MAE     float64  `json:"mae,omitempty"`
	MSE     float64  `json:"mse,omitempty"`

	// Clustering metrics.
	SilhouetteScore float64 `json:"silhouette_score,omitempty"`
	ClustersCreated int     `json:"clusters_created,omitempty"`
}

// IsError reports whether this result represents a failed algorithm.
func (r AlgorithmResult) IsError() bool {
	return r.Error != ""
}

// PrimaryScore returns the type-specific headline metric used for model
// ranking: accuracy for classification, R² for regression, silhouette for
// clustering. The second return is false for error results and unknown
// model types.
func (r AlgorithmResult) PrimaryScore() (float64, bool) {
	if r.IsError() {
		return 0, false
	}
	switch r.ModelType {
	case ModelTypeClassification:
		return r.Accuracy, true
	case ModelTypeRegression:
		return r.R2Score, true
	case ModelTypeClustering:
		return r.SilhouetteScore, true
	default:
		return 0, false
	}
}
