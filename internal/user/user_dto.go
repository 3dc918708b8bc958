package user

type CreateUserRequest struct {
	FullName     string  `json:"fullName" binding:"required,max=150"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	RoleID       string  `json:"roleId" binding:"required,uuid"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
	BranchID     *string `json:"branchId" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FullName     string  `json:"fullName" binding:"required,max=150"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
	BranchID     *string `json:"branchId" binding:"omitempty,uuid"`
}

type UpdateUserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

type AssignRoleRequest struct {
	RoleID string `json:"roleId" binding:"required,uuid"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	RoleID         string  `json:"roleId"`
	Role           string  `json:"role,omitempty"`
	DepartmentID   *string `json:"departmentId"`
	DepartmentName string  `json:"departmentName,omitempty"`
	BranchID       *string `json:"branchId"`
	IsActive       bool    `json:"isActive"`
	CreatedAt      string  `json:"createdAt"`
}
