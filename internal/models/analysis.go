package models

type AnalysisRequest struct {
	Resume         string `json:"resume" form:"resume"`
	JobDescription string `json:"job_description" form:"job_description"`
}

type AnalysisResponse struct {
	Feedback string `json:"feedback"`
}

type ExtractResponse struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

type VisitorsResponse struct {
	Visitors string `json:"visitors"`
}
