package httpv1

import "github.com/Egor213/LogiStat/internal/domain"

type uploadResponse struct {
	Success  bool          `json:"success"`
	Stats    *domain.Stats `json:"stats"`
	Filename string        `json:"filename"`
	JSONFile string        `json:"jsonFile"`
	S3Key    string        `json:"s3Key"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type urlResponse struct {
	URL string `json:"url"`
}

type uploadsResponse struct {
	Uploads []domain.Upload `json:"uploads"`
}

func failure(message string, err error) failureResponse {
	resp := failureResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
