package api

import "github.com/samcharles93/contfrac/internal/series"

// EvaluationRequest is the body of POST /v1/evaluations: a problem document
// with either one inline problem or a list.
type EvaluationRequest = series.File

type Evaluation struct {
	ID        string          `json:"id"`
	Object    string          `json:"object"`
	CreatedAt int64           `json:"created_at"`
	Settings  series.Settings `json:"settings"`
	Results   []series.Report `json:"results"`
}

type EvaluationList struct {
	Object string   `json:"object"`
	Data   []string `json:"data"`
}

type DeleteEvaluationResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type FamilyList struct {
	Object string          `json:"object"`
	Data   []series.Family `json:"data"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
