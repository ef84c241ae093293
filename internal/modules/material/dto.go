package material

type AddMaterialRequest struct {
	SessionID int64  `json:"session_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Link      string `json:"link" binding:"required,url"`
}
