package dto

type MarkAttendanceRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid4"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
