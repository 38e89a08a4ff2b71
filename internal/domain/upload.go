package domain

// UploadOutcome is the server-reported result for one submitted file.
type UploadOutcome struct {
	Filename string       `json:"filename"`
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Data     *OutcomeData `json:"data,omitempty"`
}

type OutcomeData struct {
	Date            string `json:"date"`
	TotalOperations int    `json:"total_operations"`
	People          int    `json:"people"`
}

type UploadResponse struct {
	Message string           `json:"message"`
	Results []*UploadOutcome `json:"results"`
}

func (r *UploadResponse) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}

	return n
}
