package domain

type EnforceRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionItem struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type RoleResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Permissions []PermissionItem `json:"permissions"`
}

type CreateRoleRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Permissions []PermissionItem `json:"permissions" binding:"dive"`
}

type UpdateRoleRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Permissions []PermissionItem `json:"permissions" binding:"dive"`
}
