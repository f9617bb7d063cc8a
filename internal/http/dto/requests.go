package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateBusinessRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

type UpdateBusinessRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Status  string  `json:"status,omitempty"`
}

type CreateBuildingRequest struct {
	BusinessID string  `json:"business_id"`
	Name       string  `json:"name"`
	Address    *string `json:"address,omitempty"`
	Floors     *int    `json:"floors,omitempty"`
}

type UpdateBuildingRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Floors  *int    `json:"floors,omitempty"`
	Status  string  `json:"status,omitempty"`
}

type CreateMaintenanceRequest struct {
	BuildingID  string     `json:"building_id"`
	Title       string     `json:"title"`
	Detail      *string    `json:"detail,omitempty"`
	Status      string     `json:"status,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type UpdateMaintenanceRequest struct {
	Title       string     `json:"title"`
	Detail      *string    `json:"detail,omitempty"`
	Status      string     `json:"status,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// CreateQuestionRequest maps the non-file fields of the multipart form.
type CreateQuestionRequest struct {
	MaintenanceID string  `json:"maintenance_id" form:"maintenance_id"`
	ParentID      *string `json:"parent_id,omitempty" form:"parent_id"`
	Body          string  `json:"body" form:"body"`
}

type CreateRoleRequest struct {
	Name        string                     `json:"name"`
	Permissions map[string]map[string]bool `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        string                     `json:"name,omitempty"`
	Permissions map[string]map[string]bool `json:"permissions,omitempty"`
	Status      string                     `json:"status,omitempty"`
}

type CreateUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

type AssignRoleRequest struct {
	RoleID     string  `json:"role_id"`
	BusinessID *string `json:"business_id,omitempty"`
}
