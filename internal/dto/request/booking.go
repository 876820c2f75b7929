package request

type StartSessionRequest struct {
	ZoneID string `json:"zone_id" validate:"required,uuid4"`
}
