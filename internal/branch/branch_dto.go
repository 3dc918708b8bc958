package branch

type BranchRequest struct {
	Name     string `json:"name" binding:"required,max=150"`
	Location string `json:"location" binding:"max=255"`
}

type BranchResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	CreatedAt string `json:"createdAt"`
}
