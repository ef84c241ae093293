package admin

type UserListFilter struct {
	Role  string
	Query string
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student tutor admin"`
}

type StatisticsResponse struct {
	TotalUsers       int `json:"total_users"`
	TotalSessions    int `json:"total_sessions"`
	PendingSessions  int `json:"pending_sessions"`
	ApprovedSessions int `json:"approved_sessions"`
	RejectedSessions int `json:"rejected_sessions"`
	TotalBookings    int `json:"total_bookings"`
	TodayBookings    int `json:"today_bookings"`
}
