package dto

import "encoding/json"

type OrderResponse struct {
	Order json.RawMessage `json:"order"`
}
