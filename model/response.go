package model

import "time"

// Response is the envelope of every JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Code      string      `json:"code"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
