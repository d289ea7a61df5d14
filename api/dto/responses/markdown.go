// ABOUTME: Response DTOs for the Markdown rendering endpoints
// ABOUTME: One entry per requested URL, in request order

package responses

// ArticleResponse is the Markdown rendering of one web page
type ArticleResponse struct {
	URL      string `json:"url" doc:"Requested URL"`
	Title    string `json:"title,omitempty" doc:"Resolved article title"`
	Markdown string `json:"markdown" doc:"Article rendered as Markdown"`
	Status   string `json:"status" enum:"ok,error" doc:"Outcome for this URL"`
	Error    string `json:"error,omitempty" doc:"Failure reason when status is error"`
}

// DiscussionResponse is the Markdown rendering of one discussion thread
type DiscussionResponse struct {
	URL      string `json:"url" doc:"Requested URL"`
	Markdown string `json:"markdown" doc:"Thread rendered as Markdown"`
	Status   string `json:"status" enum:"ok,empty,error" doc:"Outcome for this URL; empty means no discussion was found"`
	Error    string `json:"error,omitempty" doc:"Failure reason when status is error"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
